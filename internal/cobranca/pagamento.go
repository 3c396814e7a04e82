package cobranca

import (
	"context"
	"fmt"

	"github.com/KromaEnergia/comissio/internal/parcela"
	"github.com/KromaEnergia/comissio/internal/utils"
)

// AlternarPagamento marca a parcela como paga ou estorna o pagamento e
// recalcula o status da cobrança na mesma transação.
//
// Parcela e cobrança são gravadas com checagem de versão: se outra operação
// alterou qualquer uma das duas desde a leitura, nada é gravado e o erro é
// utils.ErrConflito. versaoEsperada, quando informada, é a versão da parcela
// que o operador viu.
func (s *Servico) AlternarPagamento(ctx context.Context, cobrancaID, parcelaID string, versaoEsperada *int64) (*Cobranca, error) {
	var (
		atualizada *Cobranca
		alterada   parcela.Parcela
	)

	err := s.Repo.Transacao(ctx, func(repo Repository) error {
		c, err := repo.Buscar(ctx, cobrancaID)
		if err != nil {
			return err
		}

		idx := -1
		for i := range c.Parcelas {
			if c.Parcelas[i].ID == parcelaID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return fmt.Errorf("%w: parcela %s não pertence à cobrança %s", utils.ErrNaoEncontrado, parcelaID, cobrancaID)
		}

		p := &c.Parcelas[idx]
		if versaoEsperada != nil && *versaoEsperada != p.Versao {
			return fmt.Errorf("%w: parcela na versão %d, esperada %d", utils.ErrConflito, p.Versao, *versaoEsperada)
		}

		versaoParcela := p.Versao
		p.Alternar(s.agora())
		if err := repo.AtualizarParcela(ctx, p, versaoParcela); err != nil {
			return err
		}
		p.Versao = versaoParcela + 1

		versaoCobranca := c.Versao
		c.Status = Consolidar(*c, c.Parcelas).Status
		if err := repo.AtualizarStatus(ctx, c, versaoCobranca); err != nil {
			return err
		}
		c.Versao = versaoCobranca + 1

		atualizada = c
		alterada = *p
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.Observador != nil {
		s.Observador.PagamentoAlternado(ctx, atualizada, alterada)
	}
	return atualizada, nil
}
