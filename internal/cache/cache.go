package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const timeoutConexao = 2 * time.Second

// Cache guarda leituras derivadas no Redis. Sem Redis configurado (ou
// inacessível na subida) todas as operações viram no-op e Buscar sempre erra.
type Cache struct {
	rdb *redis.Client
}

// Conectar devolve um Cache desligado quando addr é vazio ou o ping falha.
func Conectar(ctx context.Context, addr string) *Cache {
	if addr == "" {
		slog.Warn("REDIS_ADDR não definido, cache desativado")
		return &Cache{}
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:        addr,
		DialTimeout: timeoutConexao,
	})
	pingCtx, cancel := context.WithTimeout(ctx, timeoutConexao)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		slog.Error("não foi possível conectar ao Redis, cache desativado", "addr", addr, "erro", err)
		_ = rdb.Close()
		return &Cache{}
	}

	slog.Info("conectado ao Redis", "addr", addr)
	return &Cache{rdb: rdb}
}

func (c *Cache) Ativo() bool {
	return c != nil && c.rdb != nil
}

// Buscar decodifica o valor de chave em destino. false indica ausência.
func (c *Cache) Buscar(ctx context.Context, chave string, destino any) (bool, error) {
	if !c.Ativo() {
		return false, nil
	}
	b, err := c.rdb.Get(ctx, chave).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(b, destino); err != nil {
		return false, err
	}
	return true, nil
}

func chaveGeracao(chave string) string {
	return chave + ":geracao"
}

// Geracao devolve o contador de invalidações de chave (0 se nunca invalidada).
func (c *Cache) Geracao(ctx context.Context, chave string) (int64, error) {
	if !c.Ativo() {
		return 0, nil
	}
	n, err := c.rdb.Get(ctx, chaveGeracao(chave)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return n, err
}

// GuardarSe grava v em JSON com expiração ttl somente se chave não foi
// invalidada desde que geracao foi lida. false indica que a gravação foi descartada.
func (c *Cache) GuardarSe(ctx context.Context, chave string, geracao int64, v any, ttl time.Duration) (bool, error) {
	if !c.Ativo() {
		return false, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return false, err
	}

	gk := chaveGeracao(chave)
	gravou := false
	err = c.rdb.Watch(ctx, func(tx *redis.Tx) error {
		atual, err := tx.Get(ctx, gk).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if atual != geracao {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(p redis.Pipeliner) error {
			p.Set(ctx, chave, b, ttl)
			return nil
		})
		gravou = err == nil
		return err
	}, gk)
	if errors.Is(err, redis.TxFailedErr) {
		return false, nil
	}
	return gravou, err
}

// Invalidar apaga as chaves e avança suas gerações, descartando gravações
// que estejam em andamento com dados lidos antes.
func (c *Cache) Invalidar(ctx context.Context, chaves ...string) error {
	if !c.Ativo() || len(chaves) == 0 {
		return nil
	}
	_, err := c.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		for _, k := range chaves {
			p.Incr(ctx, chaveGeracao(k))
		}
		p.Del(ctx, chaves...)
		return nil
	})
	return err
}

// Ping é usado pelo /health; cache desativado não é falha.
func (c *Cache) Ping(ctx context.Context) error {
	if !c.Ativo() {
		return nil
	}
	return c.rdb.Ping(ctx).Err()
}

func (c *Cache) Fechar() error {
	if !c.Ativo() {
		return nil
	}
	return c.rdb.Close()
}
