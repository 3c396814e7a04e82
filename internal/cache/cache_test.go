package cache

import (
	"context"
	"testing"
	"time"
)

func TestCacheDesativadoSemEndereco(t *testing.T) {
	c := Conectar(context.Background(), "")
	if c.Ativo() {
		t.Fatal("cache sem endereço deveria estar desativado")
	}

	ctx := context.Background()
	if gravou, err := c.GuardarSe(ctx, "k", 0, map[string]int{"a": 1}, time.Minute); gravou || err != nil {
		t.Errorf("GuardarSe = %v, %v; quero descarte silencioso", gravou, err)
	}
	if g, err := c.Geracao(ctx, "k"); g != 0 || err != nil {
		t.Errorf("Geracao = %d, %v", g, err)
	}
	var v map[string]int
	ok, err := c.Buscar(ctx, "k", &v)
	if ok || err != nil {
		t.Errorf("Buscar = %v, %v; quero ausência", ok, err)
	}
	if err := c.Invalidar(ctx, "k"); err != nil {
		t.Errorf("Invalidar: %v", err)
	}
	if err := c.Ping(ctx); err != nil {
		t.Errorf("Ping: %v", err)
	}
	if err := c.Fechar(); err != nil {
		t.Errorf("Fechar: %v", err)
	}
}

func TestCacheNilSeguro(t *testing.T) {
	var c *Cache
	if c.Ativo() {
		t.Fatal("nil não está ativo")
	}
	var v string
	if ok, err := c.Buscar(context.Background(), "k", &v); ok || err != nil {
		t.Errorf("Buscar = %v, %v", ok, err)
	}
}

func TestCacheInacessivelFicaDesativado(t *testing.T) {
	c := Conectar(context.Background(), "127.0.0.1:1")
	if c.Ativo() {
		t.Fatal("Redis inacessível deveria desativar o cache")
	}
}
