package handlers

import (
	"net/http"
	"strings"

	"github.com/dmitrymomot/folio/internal"
	"github.com/dmitrymomot/folio/middlewares"
	"github.com/dmitrymomot/folio/pkg/lang"
)

// APIPrefix is the mount point of the JSON API.
const APIPrefix = "/api"

// API serves language metadata as JSON.
type API struct{}

// NewAPI creates the API handlers.
func NewAPI() *API {
	return &API{}
}

type languageResponse struct {
	lang.Info
	Active bool `json:"active"`
}

type resolutionResponse struct {
	Code   lang.Code   `json:"code"`
	Source lang.Source `json:"source"`
	Path   string      `json:"path"`
}

type apiError struct {
	Error string `json:"error"`
}

// Routes registers the API under APIPrefix.
func (h *API) Routes(r internal.Router) {
	r.Route(APIPrefix, func(r internal.Router) {
		r.GET("/languages", h.languages)
		r.GET("/resolution", h.resolution)
	})
}

// languages lists the supported languages in switcher order.
func (h *API) languages(c internal.Context) error {
	active := c.Language()
	all := lang.All()
	out := make([]languageResponse, 0, len(all))
	for _, info := range all {
		out = append(out, languageResponse{Info: info, Active: info.Code == active})
	}
	return c.JSON(http.StatusOK, out)
}

// resolution reports how the request's language was chosen. The optional
// "path" query is localized into the resolved language; it defaults to "/".
func (h *API) resolution(c internal.Context) error {
	state, ok := middlewares.GetState(c)
	if !ok {
		return internal.NewHTTPError(http.StatusServiceUnavailable, "language is not resolved")
	}

	target := c.Query("path")
	if !lang.IsLocalPath(target) {
		target = "/"
	}
	return c.JSON(http.StatusOK, resolutionResponse{
		Code:   state.Code(),
		Source: state.Preference.Source,
		Path:   state.Link(target),
	})
}

func isAPI(r *http.Request) bool {
	return r.URL.Path == APIPrefix || strings.HasPrefix(r.URL.Path, APIPrefix+"/")
}
