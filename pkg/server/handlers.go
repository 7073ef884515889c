package server

import (
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/stc/pkg/compose"
	"github.com/matzehuels/stc/pkg/errors"
	"github.com/matzehuels/stc/pkg/message"
)

func (s *Server) handleListTabs(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, s.browser.Tabs())
}

func (s *Server) handleOpenTab(w http.ResponseWriter, r *http.Request) {
	var body struct {
		URL  string `json:"url"`
		HTML string `json:"html"`
	}
	if err := decode(w, r, &body); err != nil {
		errorResponse(w, err)
		return
	}

	var (
		id  string
		err error
	)
	switch {
	case body.HTML != "":
		url := body.URL
		if url == "" {
			url = "about:blank"
		}
		id, err = s.browser.OpenHTML(r.Context(), url, body.HTML)
	case body.URL != "":
		if err = errors.ValidateURL(body.URL); err == nil {
			id, err = s.browser.Open(r.Context(), body.URL)
		}
	default:
		err = errors.New(errors.ErrCodeInvalidInput, "url or html is required")
	}
	if err != nil {
		errorResponse(w, err)
		return
	}
	jsonResponse(w, http.StatusCreated, map[string]string{"id": id})
}

func (s *Server) handleActivate(w http.ResponseWriter, r *http.Request) {
	if err := s.browser.Activate(chi.URLParam(r, "id")); err != nil {
		errorResponse(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	if err := s.browser.Reload(r.Context(), chi.URLParam(r, "id")); err != nil {
		errorResponse(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type selectorBody struct {
	Selector string `json:"selector"`
	Leave    bool   `json:"leave"`
}

func (s *Server) readSelector(w http.ResponseWriter, r *http.Request) (selectorBody, error) {
	var body selectorBody
	if err := decode(w, r, &body); err != nil {
		return body, err
	}
	return body, errors.ValidateSelector(body.Selector)
}

func (s *Server) handleClick(w http.ResponseWriter, r *http.Request) {
	body, err := s.readSelector(w, r)
	if err != nil {
		errorResponse(w, err)
		return
	}
	n, err := s.browser.Click(r.Context(), chi.URLParam(r, "id"), body.Selector)
	if err != nil {
		errorResponse(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, map[string]int{"clicked": n})
}

func (s *Server) handleHover(w http.ResponseWriter, r *http.Request) {
	body, err := s.readSelector(w, r)
	if err != nil {
		errorResponse(w, err)
		return
	}
	n, err := s.browser.Hover(r.Context(), chi.URLParam(r, "id"), body.Selector, body.Leave)
	if err != nil {
		errorResponse(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, map[string]int{"hovered": n})
}

func (s *Server) handleMessage(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err != nil {
		errorResponse(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "read body"))
		return
	}
	cmd, err := message.Decode(data)
	if err != nil {
		errorResponse(w, err)
		return
	}
	if err := s.browser.SendMessage(r.Context(), chi.URLParam(r, "id"), cmd); err != nil {
		errorResponse(w, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func (s *Server) handleIntent(w http.ResponseWriter, r *http.Request) {
	var err error
	switch intent := chi.URLParam(r, "intent"); intent {
	case "testimonial":
		err = s.panel.Testimonial(r.Context())
	case "member":
		err = s.panel.Member(r.Context())
	case "disable":
		err = s.panel.Disable(r.Context())
	case "clear":
		err = s.panel.Clear(r.Context())
	default:
		err = errors.New(errors.ErrCodeInvalidMode, "unknown intent %q", intent)
	}
	if err != nil {
		errorResponse(w, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func (s *Server) handleOpenComposer(w http.ResponseWriter, r *http.Request) {
	id, err := s.panel.OpenComposer(r.Context())
	if err != nil {
		errorResponse(w, err)
		return
	}
	jsonResponse(w, http.StatusCreated, map[string]string{"id": id})
}

func (s *Server) handleItems(w http.ResponseWriter, r *http.Request) {
	items, err := s.repo.Load(r.Context())
	if err != nil {
		errorResponse(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, items)
}

func (s *Server) handleClearItems(w http.ResponseWriter, r *http.Request) {
	if err := s.repo.Clear(r.Context()); err != nil {
		errorResponse(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleRender re-reads storage, renders and returns the PNG as a download.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	c := compose.New(s.repo, compose.Config{Canvas: s.browser.Canvas(), Logger: s.logger})
	if err := c.Load(r.Context()); err != nil {
		errorResponse(w, err)
		return
	}
	s.renderPNG(w, r, c)
}

// handleTabRender renders through an editor tab, using the selection the tab
// read when it was opened.
func (s *Server) handleTabRender(w http.ResponseWriter, r *http.Request) {
	c, err := s.browser.Composer(chi.URLParam(r, "id"))
	if err != nil {
		errorResponse(w, err)
		return
	}
	s.renderPNG(w, r, c)
}

func (s *Server) renderPNG(w http.ResponseWriter, r *http.Request, c *compose.Composer) {
	opts, err := renderOptions(w, r)
	if err != nil {
		errorResponse(w, err)
		return
	}
	res, err := c.Render(r.Context(), opts)
	if err != nil {
		errorResponse(w, err)
		return
	}
	data, err := c.Export(r.Context())
	if err != nil {
		errorResponse(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", `attachment; filename="`+compose.Filename+`"`)
	w.Header().Set("X-Items-Rendered", strconv.Itoa(res.Items))
	if res.LogoErr != nil {
		w.Header().Set("X-Logo-Error", errors.UserMessage(res.LogoErr))
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func renderOptions(w http.ResponseWriter, r *http.Request) (compose.Options, error) {
	if r.Method == http.MethodGet {
		q := r.URL.Query()
		return compose.Options{Background: q.Get("bg"), Footer: q.Get("footer")}, nil
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := r.ParseMultipartForm(maxBodySize); err != nil && err != http.ErrNotMultipart {
		return compose.Options{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid form")
	}
	opts := compose.Options{Background: r.FormValue("bg"), Footer: r.FormValue("footer")}

	file, _, err := r.FormFile("logo")
	switch {
	case err == http.ErrMissingFile || err == http.ErrNotMultipart:
	case err != nil:
		return opts, errors.Wrap(errors.ErrCodeInvalidInput, err, "read logo")
	default:
		defer file.Close()
		data, err := io.ReadAll(file)
		if err != nil {
			return opts, errors.Wrap(errors.ErrCodeInvalidInput, err, "read logo")
		}
		opts.LogoData = data
	}
	return opts, nil
}
