package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/KromaEnergia/comissio/internal/utils"
)

const intervaloKeepAlive = 25 * time.Second

type Handler struct {
	Usuarios     UsuarioRepository
	Refresh      RefreshRepository
	Chaves       *Chaves
	Eventos      *Eventos
	CookieSeguro bool
	Agora        func() time.Time
}

func NewHandler(usuarios UsuarioRepository, refresh RefreshRepository, chaves *Chaves, eventos *Eventos, cookieSeguro bool) *Handler {
	return &Handler{
		Usuarios:     usuarios,
		Refresh:      refresh,
		Chaves:       chaves,
		Eventos:      eventos,
		CookieSeguro: cookieSeguro,
		Agora:        time.Now,
	}
}

func (h *Handler) agora() time.Time {
	if h.Agora == nil {
		return time.Now()
	}
	return h.Agora()
}

func (h *Handler) publicar(tipo TipoEvento, userID, email string) {
	h.Eventos.Publicar(EventoSessao{Tipo: tipo, UserID: userID, Email: email, Em: h.agora()})
}

type loginDTO struct {
	Email string `json:"email"`
	Senha string `json:"password"`
}

// POST /auth/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var in loginDTO
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(in.Email) == "" || in.Senha == "" {
		utils.ResponderErro(w, fmt.Errorf("%w: informe e-mail e senha", utils.ErrInvalido), "")
		return
	}

	u, err := h.Usuarios.BuscarPorEmail(r.Context(), in.Email)
	if err != nil && !errors.Is(err, utils.ErrNaoEncontrado) {
		utils.ResponderErro(w, err, "Falha ao autenticar. Tente novamente.")
		return
	}
	if u == nil || !utils.CheckSenha(u.SenhaHash, in.Senha) {
		utils.ResponderErro(w, utils.ErrNaoAutorizado, "E-mail ou senha inválidos")
		return
	}

	resp, err := h.emitir(r.Context(), w, u, "")
	if err != nil {
		utils.ResponderErro(w, err, "Falha ao emitir sessão")
		return
	}
	slog.Info("login", "usuario", u.ID)
	h.publicar(EventoEntrou, u.ID, u.Email)
	utils.ResponderJSON(w, http.StatusOK, resp)
}

// POST /auth/refresh
// O refresh token usado é revogado e substituído por outro da mesma família.
func (h *Handler) Renovar(w http.ResponseWriter, r *http.Request) {
	c, err := r.Cookie(RefreshCookie)
	if err != nil || c.Value == "" {
		utils.ResponderErro(w, utils.ErrNaoAutorizado, "Sessão ausente")
		return
	}

	atual, err := h.Refresh.BuscarPorHash(r.Context(), hashRaw(c.Value))
	if err != nil {
		h.limparCookie(w)
		if errors.Is(err, utils.ErrNaoEncontrado) {
			err = utils.ErrNaoAutorizado
		}
		utils.ResponderErro(w, err, "Sessão inválida")
		return
	}
	if !atual.Utilizavel(h.agora()) {
		h.limparCookie(w)
		utils.ResponderErro(w, utils.ErrNaoAutorizado, "Sessão expirada")
		return
	}

	u, err := h.Usuarios.BuscarPorID(r.Context(), atual.UsuarioID)
	if err != nil {
		h.limparCookie(w)
		if errors.Is(err, utils.ErrNaoEncontrado) {
			err = utils.ErrNaoAutorizado
		}
		utils.ResponderErro(w, err, "Sessão inválida")
		return
	}
	if err := h.Refresh.Revogar(r.Context(), atual.ID, h.agora()); err != nil {
		utils.ResponderErro(w, err, "Falha ao renovar sessão")
		return
	}

	resp, err := h.emitir(r.Context(), w, u, atual.Familia)
	if err != nil {
		h.limparCookie(w)
		utils.ResponderErro(w, err, "Falha ao renovar sessão")
		return
	}
	h.publicar(EventoRenovado, u.ID, u.Email)
	utils.ResponderJSON(w, http.StatusOK, resp)
}

// POST /auth/logout
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(RefreshCookie); err == nil && c.Value != "" {
		if atual, err := h.Refresh.BuscarPorHash(r.Context(), hashRaw(c.Value)); err == nil {
			if err := h.Refresh.Revogar(r.Context(), atual.ID, h.agora()); err != nil {
				slog.Warn("falha ao revogar refresh token", "erro", err)
			}
			h.publicar(EventoSaiu, atual.UsuarioID, "")
		}
	}
	h.limparCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

type sessaoResposta struct {
	Valida bool `json:"valid"`
	*Sessao
}

// GET /auth/session
func (h *Handler) Sessao(w http.ResponseWriter, r *http.Request) {
	s, ok := SessaoDe(r.Context())
	if !ok {
		utils.ResponderJSON(w, http.StatusOK, sessaoResposta{Valida: false})
		return
	}
	utils.ResponderJSON(w, http.StatusOK, sessaoResposta{Valida: true, Sessao: s})
}

// GET /auth/session/eventos
// Stream SSE das mudanças de sessão do usuário autenticado.
func (h *Handler) EventosSessao(w http.ResponseWriter, r *http.Request) {
	s, ok := SessaoDe(r.Context())
	if !ok {
		utils.ResponderErro(w, utils.ErrNaoAutorizado, "Sessão ausente")
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming não suportado", http.StatusInternalServerError)
		return
	}

	// o stream vive além do WriteTimeout do servidor
	if err := http.NewResponseController(w).SetWriteDeadline(time.Time{}); err != nil {
		slog.Debug("stream de sessão mantém o prazo de escrita do servidor", "erro", err)
	}

	eventos, cancelar := h.Eventos.Assinar()
	defer cancelar()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	ticker := time.NewTicker(intervaloKeepAlive)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
			fmt.Fprint(w, ": ping\n\n")
			flusher.Flush()
		case ev, aberto := <-eventos:
			if !aberto {
				return
			}
			if ev.UserID != s.UserID {
				continue
			}
			b, err := json.Marshal(ev)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Tipo, b)
			flusher.Flush()
			if ev.Tipo == EventoSaiu {
				return
			}
		}
	}
}
