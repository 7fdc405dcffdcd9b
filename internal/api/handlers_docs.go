package api

import (
	"encoding/json"
	"net/http"
	"os"

	"github.com/dgallion1/vidnotes/internal/docstore"
	"github.com/go-chi/chi/v5"
)

// handleListDocuments lists all processed documents, newest first.
func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	metas, err := s.orchestrator.Store().List()
	if err != nil {
		jsonError(w, "failed to list documents: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if metas == nil {
		metas = []docstore.Meta{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"documents": metas})
}

// handleDeleteDocument removes a document directory, frames included.
func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "docID")

	if err := s.orchestrator.Store().Delete(docID); err != nil {
		if os.IsNotExist(err) {
			jsonError(w, "document not found", http.StatusNotFound)
			return
		}
		jsonError(w, "failed to delete document: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"deleted": docID})
}
