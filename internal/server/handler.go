package server

import (
	"net/http"
	"strconv"

	"github.com/Fridayxiao/arxiv-mcp-server-HTML/internal/apperror"
	"github.com/Fridayxiao/arxiv-mcp-server-HTML/internal/download"
	"github.com/Fridayxiao/arxiv-mcp-server-HTML/internal/history"
)

type handler struct {
	downloadSvc *download.Service
	historySvc  *history.Service
}

func (h *handler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// downloadPaper starts (or reports) a download-and-convert job. The result
// is always a structured status document, so the HTTP status stays 200 even
// for failed conversions.
func (h *handler) downloadPaper(w http.ResponseWriter, r *http.Request) {
	req := download.Request{PaperID: r.PathValue("id")}
	res := h.downloadSvc.RequestOrCheck(r.Context(), req)
	writeJSON(w, http.StatusOK, res)
}

func (h *handler) paperStatus(w http.ResponseWriter, r *http.Request) {
	req := download.Request{PaperID: r.PathValue("id"), CheckOnly: true}
	res := h.downloadSvc.RequestOrCheck(r.Context(), req)
	writeJSON(w, http.StatusOK, res)
}

func (h *handler) readPaper(w http.ResponseWriter, r *http.Request) {
	content, err := h.downloadSvc.ReadPaper(r.PathValue("id"))
	if err != nil {
		if ae, ok := err.(*apperror.AppError); ok {
			writeError(w, ae.HTTPStatus(), ae.Message())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(content))
}

func (h *handler) listPapers(w http.ResponseWriter, r *http.Request) {
	papers, err := h.downloadSvc.ListPapers()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, papers)
}

func (h *handler) getConversion(w http.ResponseWriter, r *http.Request) {
	idStr := r.PathValue("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid conversion id")
		return
	}

	req := history.GetConversionRequest{ID: id}
	if appErr := req.Validate(); appErr != nil {
		writeError(w, appErr.HTTPStatus(), appErr.Message())
		return
	}

	c, err := h.historySvc.Get(r.Context(), req)
	if err != nil {
		if ae, ok := err.(*apperror.AppError); ok {
			writeError(w, ae.HTTPStatus(), ae.Message())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, c)
}

func (h *handler) listConversions(w http.ResponseWriter, r *http.Request) {
	req := history.ListConversionsRequest{
		PaperID: r.URL.Query().Get("paperId"),
		Status:  r.URL.Query().Get("status"),
	}

	conversions, err := h.historySvc.List(r.Context(), req)
	if err != nil {
		if ae, ok := err.(*apperror.AppError); ok {
			writeError(w, ae.HTTPStatus(), ae.Message())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, conversions)
}
