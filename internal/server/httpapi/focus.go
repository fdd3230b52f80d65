package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/focuskeeper/internal/server/models"
)

// focusSummary is a focus without its children.
type focusSummary struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	ParentFocusID *string `json:"parent_focus_id"`
}

// focusView is a focus with its immediate children.
type focusView struct {
	focusSummary
	Children []focusSummary `json:"child_focuses"`
}

type rootFocusResponse struct {
	RootFocus focusView `json:"root_focus"`
}

type focusResponse struct {
	Focus focusView `json:"focus"`
}

type createFocusRequest struct {
	Name          string `json:"name"`
	ParentFocusID string `json:"parent_focus_id"`
}

func toSummary(f *models.Focus) focusSummary {
	return focusSummary{ID: f.ID, Name: f.Name, ParentFocusID: f.ParentFocusID}
}

func toView(f *models.Focus) focusView {
	v := focusView{focusSummary: toSummary(f), Children: make([]focusSummary, 0, len(f.Children))}
	for i := range f.Children {
		v.Children = append(v.Children, toSummary(&f.Children[i]))
	}
	return v
}

func (s *Server) handleGetRoot(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromContext(r.Context())

	root, err := s.focuses.GetRoot(r.Context(), claims.UserID)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, rootFocusResponse{RootFocus: toView(root)})
}

func (s *Server) handleGetFocus(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromContext(r.Context())

	id := r.URL.Query().Get("id")
	if id == "" {
		writeBadRequest(w, "id is required")
		return
	}

	focus, err := s.focuses.Get(r.Context(), id, claims.UserID)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, focusResponse{Focus: toView(focus)})
}

func (s *Server) handleCreateFocus(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromContext(r.Context())

	var req createFocusRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.ParentFocusID == "" {
		writeBadRequest(w, "parent_focus_id is required")
		return
	}

	focus, err := s.focuses.Create(r.Context(), req.Name, req.ParentFocusID, claims.UserID)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.logger.Debug(r.Context(), "focus created", "focus_id", focus.ID, "user_id", claims.UserID)
	writeJSON(w, http.StatusOK, focusResponse{Focus: toView(focus)})
}

func (s *Server) handleUpdateFocus(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromContext(r.Context())
	q := r.URL.Query()

	focus, err := s.focuses.Update(r.Context(), q.Get("id"), q.Get("name"), claims.UserID)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, focusResponse{Focus: toView(focus)})
}

func (s *Server) handleDeleteFocus(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromContext(r.Context())

	if err := s.focuses.Delete(r.Context(), r.URL.Query().Get("id"), claims.UserID); err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
