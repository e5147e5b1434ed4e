package server

import "net/http"

func (s *Server) codesAndNames(w http.ResponseWriter, r *http.Request) {
	currencies, err := s.store.ListCurrencies(r.Context(), true)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	out := make(map[string]string, len(currencies))
	for _, c := range currencies {
		out[c.Code] = c.Name
	}
	writeJSON(w, http.StatusOK, out)
}
