package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/KromaEnergia/comissio/internal/armazem"
	"github.com/KromaEnergia/comissio/internal/armazenamento"
	"github.com/KromaEnergia/comissio/internal/auth"
	"github.com/KromaEnergia/comissio/internal/cache"
	"github.com/KromaEnergia/comissio/internal/carga"
	"github.com/KromaEnergia/comissio/internal/cobranca"
	"github.com/KromaEnergia/comissio/internal/config"
	"github.com/KromaEnergia/comissio/internal/devedor"
	"github.com/KromaEnergia/comissio/internal/empreendimento"
	"github.com/KromaEnergia/comissio/internal/exportacao"
	"github.com/KromaEnergia/comissio/internal/metrics"
	"github.com/KromaEnergia/comissio/internal/notificacao"
	"github.com/KromaEnergia/comissio/internal/painel"
	"github.com/KromaEnergia/comissio/internal/parcela"
	"github.com/KromaEnergia/comissio/internal/utils/db"
	"gorm.io/gorm"
)

// App reúne tudo o que é montado uma vez na subida e repassado ao roteador.
type App struct {
	Config *config.Config
	DB     *gorm.DB

	Devedores       devedor.Repository
	Empreendimentos empreendimento.Repository
	Cobrancas       cobranca.Repository
	Servico         *cobranca.Servico

	Chaves       *auth.Chaves
	Autenticador *auth.Autenticador
	Eventos      *auth.Eventos
	Usuarios     auth.UsuarioRepository
	Refresh      auth.RefreshRepository

	Cache       *cache.Cache
	Notificador notificacao.Notificador
	Metricas    *metrics.Metricas
	Arquivador  exportacao.Arquivador

	cancelarAssinatura func()
}

// Novo conecta ao banco, migra o esquema e liga os serviços opcionais
// (Redis, AMQP/webhook, S3, IdP externo) conforme a configuração.
func Novo(ctx context.Context, cfg *config.Config) (*App, error) {
	database, err := db.GetDB(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("conectar ao banco: %w", err)
	}
	if err := migrar(database); err != nil {
		_ = db.Fechar(database)
		return nil, err
	}

	a := &App{
		Config:          cfg,
		DB:              database,
		Devedores:       devedor.NewRepository(database),
		Empreendimentos: empreendimento.NewRepository(database),
		Cobrancas:       cobranca.NewRepository(database),
		Eventos:         auth.NovoEventos(),
		Usuarios:        auth.NewUsuarioRepository(database),
		Refresh:         auth.NewRefreshRepository(database),
		Metricas:        metrics.Novo(),
	}

	if err := a.montarAuth(ctx); err != nil {
		_ = a.Fechar()
		return nil, err
	}

	a.Cache = cache.Conectar(ctx, cfg.RedisAddr)
	a.Notificador = escolherNotificador(cfg)
	a.Arquivador = conectarArquivo(ctx, cfg)

	a.Servico = cobranca.NewServico(a.Cobrancas, a.Devedores, a.Empreendimentos)
	a.Servico.Observador = &Observador{
		Cache:       a.Cache,
		Metricas:    a.Metricas,
		Notificador: a.Notificador,
	}

	a.cancelarAssinatura = a.acompanharSessoes()
	return a, nil
}

func migrar(database *gorm.DB) error {
	etapas := []struct {
		nome string
		fn   func(*gorm.DB) error
	}{
		{"devedores", devedor.Migrate},
		{"empreendimentos", empreendimento.Migrate},
		{"parcelas", parcela.Migrate},
		{"cobrancas", cobranca.Migrate},
		{"usuarios", auth.Migrate},
	}
	for _, e := range etapas {
		if err := e.fn(database); err != nil {
			return fmt.Errorf("migrar %s: %w", e.nome, err)
		}
	}
	return nil
}

func (a *App) montarAuth(ctx context.Context) error {
	cfg := a.Config
	var err error
	if cfg.AuthPrivateKeyPath != "" {
		a.Chaves, err = auth.CarregarChaves(cfg.AuthPrivateKeyPath, cfg.AuthKID, cfg.AuthIssuer, cfg.AuthAudience)
	} else {
		slog.Warn("AUTH_RSA_PRIVATE_PATH não definido, gerando chave efêmera; tokens não sobrevivem a um restart")
		a.Chaves, err = auth.GerarChaves(cfg.AuthKID, cfg.AuthIssuer, cfg.AuthAudience)
	}
	if err != nil {
		return fmt.Errorf("chaves de autenticação: %w", err)
	}

	a.Autenticador = &auth.Autenticador{Chaves: a.Chaves}
	if cfg.OIDCJWKSURL != "" {
		ext, err := auth.NovoValidadorExterno(cfg.OIDCJWKSURL, cfg.OIDCIssuer, cfg.OIDCAudience)
		if err != nil {
			return fmt.Errorf("provedor externo: %w", err)
		}
		a.Autenticador.Externo = ext
		slog.Info("tokens do provedor externo habilitados", "issuer", cfg.OIDCIssuer)
	}

	return auth.GarantirAdmin(ctx, a.Usuarios, cfg.AdminEmail, cfg.AdminPassword)
}

func escolherNotificador(cfg *config.Config) notificacao.Notificador {
	if cfg.AMQPURL != "" {
		p, err := notificacao.NovoPublicador(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err == nil {
			slog.Info("notificações via AMQP", "exchange", cfg.AMQPExchange, "fila", cfg.AMQPQueue)
			return p
		}
		slog.Error("não foi possível conectar ao broker AMQP", "erro", err)
	}
	if cfg.WebhookURL != "" {
		slog.Info("notificações via webhook", "url", cfg.WebhookURL)
		return notificacao.NovoWebhook(cfg.WebhookURL)
	}
	return notificacao.Nulo{}
}

// conectarArquivo devolve nil (interface) quando o S3 não está configurado ou
// não responde; as exportações seguem sem cópia.
func conectarArquivo(ctx context.Context, cfg *config.Config) exportacao.Arquivador {
	if cfg.S3Endpoint == "" {
		return nil
	}
	s3, err := armazenamento.Conectar(armazenamento.Parametros{
		Endpoint:  cfg.S3Endpoint,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
		Region:    cfg.S3Region,
		Bucket:    cfg.S3Bucket,
		UseSSL:    cfg.S3UseSSL,
	})
	if err == nil {
		err = s3.GarantirBucket(ctx)
	}
	if err != nil {
		slog.Error("arquivo de exportações desativado", "erro", err)
		return nil
	}
	slog.Info("exportações arquivadas no S3", "bucket", cfg.S3Bucket)
	return s3
}

// Fontes monta as leituras da carga inicial a partir dos repositórios.
func (a *App) Fontes() carga.Fontes {
	return FontesDe(a.Devedores, a.Empreendimentos, a.Cobrancas)
}

func FontesDe(devs devedor.Repository, emps empreendimento.Repository, cobs cobranca.Repository) carga.Fontes {
	porNome := armazem.Ordem{Campo: "name"}
	return carga.Fontes{
		Devedores: func(ctx context.Context) ([]devedor.Devedor, error) {
			return devs.Listar(ctx, porNome, "")
		},
		Empreendimentos: func(ctx context.Context) ([]empreendimento.Empreendimento, error) {
			return emps.Listar(ctx, porNome, "")
		},
		Cobrancas: func(ctx context.Context) ([]cobranca.Cobranca, error) {
			return cobs.Listar(ctx, cobranca.Filtro{})
		},
	}
}

// InvalidarPainel descarta o painel em cache; ligado aos cadastros de
// devedores e empreendimentos, cujos nomes e contagens aparecem no resumo.
func (a *App) InvalidarPainel(ctx context.Context) {
	if err := a.Cache.Invalidar(ctx, painel.ChaveCache); err != nil {
		slog.Warn("falha ao invalidar painel", "erro", err)
	}
}

// acompanharSessoes descarta o painel em cache quando alguém sai.
func (a *App) acompanharSessoes() func() {
	eventos, cancelar := a.Eventos.Assinar()
	go func() {
		for ev := range eventos {
			if ev.Tipo != auth.EventoSaiu {
				continue
			}
			a.InvalidarPainel(context.Background())
		}
	}()
	return cancelar
}

// Ping verifica banco e, quando ativo, o Redis.
func (a *App) Ping(ctx context.Context) error {
	if err := db.Ping(ctx, a.DB); err != nil {
		return err
	}
	if err := a.Cache.Ping(ctx); err != nil {
		return fmt.Errorf("ping redis: %w", err)
	}
	return nil
}

func (a *App) Fechar() error {
	if a.cancelarAssinatura != nil {
		a.cancelarAssinatura()
	}
	if a.Autenticador != nil && a.Autenticador.Externo != nil {
		a.Autenticador.Externo.Fechar()
	}
	var errs []error
	if a.Notificador != nil {
		errs = append(errs, a.Notificador.Fechar())
	}
	errs = append(errs, a.Cache.Fechar())
	if a.DB != nil {
		errs = append(errs, db.Fechar(a.DB))
	}
	return errors.Join(errs...)
}
