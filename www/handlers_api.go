package www

import (
	"encoding/json"
	"net/http"
	"strconv"

	"zeroedge/interlock"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func writeRejection(w http.ResponseWriter, rej *interlock.Rejection) {
	status := http.StatusConflict
	if rej.Code == interlock.CodeNotFound {
		status = http.StatusNotFound
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(rej)
}

func parseID(r *http.Request, param string) (int64, error) {
	s := chi.URLParam(r, param)
	return strconv.ParseInt(s, 10, 64)
}

// --- Reads ---

func (h *Handlers) apiListMachines(w http.ResponseWriter, r *http.Request) {
	machines, err := h.engine.DB().ListMachines()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, machines)
}

func (h *Handlers) apiGetMachine(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid machine ID")
		return
	}
	m, err := h.engine.DB().GetMachine(id)
	if err != nil {
		writeError(w, http.StatusNotFound, "machine not found")
		return
	}
	writeJSON(w, m)
}

func (h *Handlers) apiListTools(w http.ResponseWriter, r *http.Request) {
	tools, err := h.engine.DB().ListTools()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, tools)
}

func (h *Handlers) apiListWorkOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.engine.DB().ListWorkOrders()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, orders)
}

func (h *Handlers) apiListFAIRecords(w http.ResponseWriter, r *http.Request) {
	recs, err := h.engine.DB().ListFAIRecords()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, recs)
}

func (h *Handlers) apiListInventory(w http.ResponseWriter, r *http.Request) {
	items, err := h.engine.DB().ListInventory()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, items)
}

func (h *Handlers) apiListQualityRecords(w http.ResponseWriter, r *http.Request) {
	recs, err := h.engine.DB().ListQualityRecords(200)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, recs)
}

func (h *Handlers) apiListProductionLog(w http.ResponseWriter, r *http.Request) {
	entries, err := h.engine.DB().ListProductionLog(200)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, entries)
}

// --- Work orders ---

func (h *Handlers) apiCreateWorkOrder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PartNumber string `json:"part_number"`
		Quantity   int    `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.PartNumber == "" || req.Quantity <= 0 {
		writeError(w, http.StatusBadRequest, "part_number and positive quantity required")
		return
	}

	id, err := h.engine.DB().CreateWorkOrder(uuid.New().String(), req.PartNumber, req.Quantity)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	wo, err := h.engine.DB().GetWorkOrder(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, wo)
}

// --- Production interlock ---

func (h *Handlers) apiStartProduction(w http.ResponseWriter, r *http.Request) {
	var req struct {
		WorkOrderID int64 `json:"work_order_id"`
		MachineID   int64 `json:"machine_id"`
		OperatorID  int64 `json:"operator_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	wo, rej, err := h.engine.Gate().StartProduction(req.WorkOrderID, req.MachineID, req.OperatorID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if rej != nil {
		writeRejection(w, rej)
		return
	}
	writeJSON(w, map[string]interface{}{"status": "started", "work_order": wo})
}

func (h *Handlers) apiStopProduction(w http.ResponseWriter, r *http.Request) {
	var req struct {
		WorkOrderID int64 `json:"work_order_id"`
		MachineID   int64 `json:"machine_id"`
		OperatorID  int64 `json:"operator_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	wo, rej, err := h.engine.Gate().StopProduction(req.WorkOrderID, req.MachineID, req.OperatorID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if rej != nil {
		writeRejection(w, rej)
		return
	}
	writeJSON(w, map[string]interface{}{"status": "stopped", "work_order": wo})
}

// apiValidateStart is a read-only dry run of the interlock decision.
func (h *Handlers) apiValidateStart(w http.ResponseWriter, r *http.Request) {
	var req struct {
		MachineID  int64  `json:"machine_id"`
		OperatorID int64  `json:"operator_id"`
		PartNumber string `json:"part_number"`
		Quantity   int    `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	decision, err := h.engine.Validator().ValidateStart(req.MachineID, req.OperatorID, req.PartNumber, req.Quantity)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, decision)
}
