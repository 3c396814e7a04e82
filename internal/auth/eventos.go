package auth

import (
	"sync"
	"time"
)

type TipoEvento string

const (
	EventoEntrou   TipoEvento = "SIGNED_IN"
	EventoSaiu     TipoEvento = "SIGNED_OUT"
	EventoRenovado TipoEvento = "TOKEN_REFRESHED"
)

const bufferAssinatura = 8

// EventoSessao é publicado a cada mudança de sessão.
type EventoSessao struct {
	Tipo   TipoEvento `json:"event"`
	UserID string     `json:"user_id"`
	Email  string     `json:"email,omitempty"`
	Em     time.Time  `json:"at"`
}

// Eventos distribui mudanças de sessão para os assinantes do processo.
// Assinantes lentos perdem eventos em vez de bloquear quem publica.
type Eventos struct {
	mu         sync.RWMutex
	proximo    int
	assinantes map[int]chan EventoSessao
}

func NovoEventos() *Eventos {
	return &Eventos{assinantes: map[int]chan EventoSessao{}}
}

// Assinar devolve o canal de eventos e a função que encerra a assinatura.
func (e *Eventos) Assinar() (<-chan EventoSessao, func()) {
	e.mu.Lock()
	defer e.mu.Unlock()

	id := e.proximo
	e.proximo++
	ch := make(chan EventoSessao, bufferAssinatura)
	e.assinantes[id] = ch

	var once sync.Once
	cancelar := func() {
		once.Do(func() {
			e.mu.Lock()
			delete(e.assinantes, id)
			close(ch)
			e.mu.Unlock()
		})
	}
	return ch, cancelar
}

func (e *Eventos) Publicar(ev EventoSessao) {
	if e == nil {
		return
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	for _, ch := range e.assinantes {
		select {
		case ch <- ev:
		default:
		}
	}
}
