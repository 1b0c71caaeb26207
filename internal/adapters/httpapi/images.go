package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Guilhem-Bonnet/zetflix/internal/domain"
	"github.com/Guilhem-Bonnet/zetflix/internal/httpjson"
)

type ImagesHandler struct {
	images ImageURLer
}

func NewImagesHandler(images ImageURLer) *ImagesHandler {
	return &ImagesHandler{images: images}
}

func (h *ImagesHandler) Routes(r chi.Router) {
	r.Get("/images/{class}", h.url)
}

func (h *ImagesHandler) url(w http.ResponseWriter, r *http.Request) {
	class, err := domain.ParseImageClass(chi.URLParam(r, "class"))
	if err != nil {
		httpjson.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	q := r.URL.Query()
	u, err := h.images.URL(class, q.Get("path"), q.Get("size"))
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]string{"url": u})
}
