package solar

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/KromaEnergia/api-erp/internal/cliente"
	"github.com/KromaEnergia/api-erp/internal/proposta"
	"github.com/KromaEnergia/api-erp/internal/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrPropostaJaGerada    = errors.New("projeto já possui proposta gerada")
	ErrEquipamentoInvalido = errors.New("painel ou inversor não encontrado ou inativo")
)

type Handler struct {
	DB       *gorm.DB
	Catalogo *CatalogoRepository
	Projetos ProjetoRepository
	Agora    func() time.Time
	// Padroes vem da configuração da empresa
	Padroes func(ctx context.Context) Padroes
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{
		DB:       db,
		Catalogo: NewCatalogoRepository(db),
		Projetos: NewProjetoRepository(),
		Agora:    time.Now,
		Padroes: func(context.Context) Padroes {
			return Padroes{DiasValidadeProposta: proposta.ValidadePadraoDias}
		},
	}
}

func (h *Handler) responderErro(w http.ResponseWriter, r *http.Request, msg string, err error) {
	switch {
	case errors.Is(err, ErrEntradaInvalida), errors.Is(err, ErrEquipamentoInvalido),
		errors.Is(err, cliente.ErrClienteInvalido), errors.Is(err, proposta.ErrPlanoInvalido):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrPropostaJaGerada):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		utils.ErroBanco(w, r, "projeto não encontrado", msg, err)
	}
}

// completar aplica os padrões da empresa e os dados dos equipamentos do catálogo
func (h *Handler) completar(ctx context.Context, db *gorm.DB, p *Parametros, painelID, inversorID *uint) error {
	pad := h.Padroes(ctx)
	if p.TarifaKWh == 0 {
		p.TarifaKWh = pad.TarifaKWh
	}
	if p.IrradiacaoKWhM2Dia == 0 {
		p.IrradiacaoKWhM2Dia = pad.IrradiacaoKWhM2Dia
	}
	if p.TarifaFioB == 0 {
		p.TarifaFioB = pad.TarifaFioB
	}
	if p.AnoReferencia == 0 {
		p.AnoReferencia = h.Agora().Year()
	}
	if p.TipoLigacao == "" {
		p.TipoLigacao = Bifasico
	}

	if painelID != nil {
		var painel PainelSolar
		if err := db.Where("ativo = ?", true).First(&painel, *painelID).Error; err != nil {
			return equipamentoErr(err)
		}
		p.PotenciaPainelW = painel.PotenciaW
		if painel.AreaM2 > 0 {
			p.AreaPainelM2 = painel.AreaM2
		}
		if p.PrecoPainel == 0 {
			p.PrecoPainel = painel.Preco.InexactFloat64()
		}
	}
	if inversorID != nil {
		var inv Inversor
		if err := db.Where("ativo = ?", true).First(&inv, *inversorID).Error; err != nil {
			return equipamentoErr(err)
		}
		p.PotenciaInversorKW = inv.PotenciaKW
		if p.PrecoInversor == 0 {
			p.PrecoInversor = inv.Preco.InexactFloat64()
		}
	}
	return nil
}

func equipamentoErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrEquipamentoInvalido
	}
	return err
}

// POST /solar/calcular
func (h *Handler) Calcular(w http.ResponseWriter, r *http.Request) {
	var req CalculoRequest
	if !utils.DecodificarJSON(w, r, &req) {
		return
	}
	p := req.Parametros
	if err := h.completar(r.Context(), h.DB, &p, req.PainelID, req.InversorID); err != nil {
		h.responderErro(w, r, "erro ao calcular", err)
		return
	}
	res, err := Calcular(p)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	utils.ResponderJSON(w, http.StatusOK, res)
}

// GET /solar/projetos?clienteId=&busca=
func (h *Handler) ListarProjetos(w http.ResponseWriter, r *http.Request) {
	clienteID, err := utils.UintQuery(r, "clienteId")
	if err != nil {
		http.Error(w, "parâmetro 'clienteId' inválido", http.StatusBadRequest)
		return
	}
	list, err := h.Projetos.Listar(h.DB, FiltroProjeto{
		ClienteID:       clienteID,
		Busca:           r.URL.Query().Get("busca"),
		IncluirInativos: utils.IncluirInativos(r),
	})
	if err != nil {
		utils.ErroInterno(w, r, "erro ao listar projetos", err)
		return
	}
	utils.ResponderJSON(w, http.StatusOK, list)
}

// montar calcula o projeto a partir do pedido; o balanço não é gravado
func (h *Handler) montar(ctx context.Context, db *gorm.DB, req *ProjetoRequest, p *ProjetoSolar) error {
	if err := cliente.ConferirAtivo(db, req.ClienteID); err != nil {
		return err
	}
	params := req.Parametros
	if err := h.completar(ctx, db, &params, req.PainelID, req.InversorID); err != nil {
		return err
	}
	if err := params.Validar(); err != nil {
		return err
	}
	res, err := Calcular(params)
	if err != nil {
		return err
	}
	res.Balanco = nil

	p.Nome = req.Nome
	p.ClienteID = req.ClienteID
	p.PainelID = req.PainelID
	p.InversorID = req.InversorID
	p.Parametros = params
	p.Resultado = res
	p.Observacoes = req.Observacoes
	return nil
}

// POST /solar/projetos
func (h *Handler) CriarProjeto(w http.ResponseWriter, r *http.Request) {
	var req ProjetoRequest
	if !utils.DecodificarJSON(w, r, &req) {
		return
	}
	var p ProjetoSolar
	if err := h.montar(r.Context(), h.DB, &req, &p); err != nil {
		h.responderErro(w, r, "erro ao calcular projeto", err)
		return
	}
	if err := h.Projetos.Criar(h.DB, &p); err != nil {
		utils.ErroInterno(w, r, "erro ao salvar projeto", err)
		return
	}
	utils.ResponderJSON(w, http.StatusCreated, p)
}

// GET /solar/projetos/{id}
func (h *Handler) BuscarProjeto(w http.ResponseWriter, r *http.Request) {
	id, err := utils.IDParam(r, "id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	p, err := h.Projetos.BuscarPorID(h.DB, id)
	if err != nil {
		utils.ErroBanco(w, r, "projeto não encontrado", "erro ao buscar projeto", err)
		return
	}
	utils.ResponderJSON(w, http.StatusOK, p)
}

// PUT /solar/projetos/{id}
// Recalcula e grava o novo resultado.
func (h *Handler) AtualizarProjeto(w http.ResponseWriter, r *http.Request) {
	id, err := utils.IDParam(r, "id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var req ProjetoRequest
	if !utils.DecodificarJSON(w, r, &req) {
		return
	}
	p, err := h.Projetos.BuscarPorID(h.DB, id)
	if err != nil {
		utils.ErroBanco(w, r, "projeto não encontrado", "erro ao buscar projeto", err)
		return
	}
	if err := h.montar(r.Context(), h.DB, &req, p); err != nil {
		h.responderErro(w, r, "erro ao calcular projeto", err)
		return
	}
	p.Cliente, p.Painel, p.Inversor = nil, nil, nil
	if err := h.Projetos.Atualizar(h.DB, p); err != nil {
		utils.ErroInterno(w, r, "erro ao atualizar projeto", err)
		return
	}
	utils.ResponderJSON(w, http.StatusOK, p)
}

// DELETE /solar/projetos/{id}
func (h *Handler) DeletarProjeto(w http.ResponseWriter, r *http.Request) {
	id, err := utils.IDParam(r, "id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.Projetos.Desativar(h.DB, id); err != nil {
		utils.ErroBanco(w, r, "projeto não encontrado", "erro ao excluir projeto", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GET /solar/projetos/{id}/balanco
func (h *Handler) Balanco(w http.ResponseWriter, r *http.Request) {
	id, err := utils.IDParam(r, "id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	p, err := h.Projetos.BuscarPorID(h.DB, id)
	if err != nil {
		utils.ErroBanco(w, r, "projeto não encontrado", "erro ao buscar projeto", err)
		return
	}
	res, err := Calcular(p.Parametros)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	utils.ResponderJSON(w, http.StatusOK, res)
}

func dinheiro(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}

// ItensProposta monta os itens da proposta do projeto: painéis, inversores e a
// instalação como diferença até o investimento total
func ItensProposta(p *ProjetoSolar) []proposta.ItemProposta {
	res := p.Resultado
	nomePainel := fmt.Sprintf("Módulo fotovoltaico %.0fW", p.Parametros.PotenciaPainelW)
	if p.Painel != nil {
		nomePainel = fmt.Sprintf("Módulo fotovoltaico %s %.0fW", p.Painel.Nome(), p.Painel.PotenciaW)
	}
	nomeInversor := fmt.Sprintf("Inversor %.1fkW", p.Parametros.PotenciaInversorKW)
	if p.Inversor != nil {
		nomeInversor = fmt.Sprintf("Inversor %s %.1fkW", p.Inversor.Nome(), p.Inversor.PotenciaKW)
	}

	var itens []proposta.ItemProposta
	equipamentos := decimal.Zero
	if p.Parametros.PrecoPainel > 0 {
		it := proposta.ItemProposta{
			Descricao:     nomePainel,
			Quantidade:    decimal.NewFromInt(int64(res.QuantidadePaineis)),
			ValorUnitario: dinheiro(p.Parametros.PrecoPainel),
		}
		equipamentos = equipamentos.Add(it.Quantidade.Mul(it.ValorUnitario))
		itens = append(itens, it)
	}
	if p.Parametros.PrecoInversor > 0 {
		it := proposta.ItemProposta{
			Descricao:     nomeInversor,
			Quantidade:    decimal.NewFromInt(int64(res.QuantidadeInversores)),
			ValorUnitario: dinheiro(p.Parametros.PrecoInversor),
		}
		equipamentos = equipamentos.Add(it.Quantidade.Mul(it.ValorUnitario))
		itens = append(itens, it)
	}

	total := dinheiro(res.InvestimentoTotal)
	if len(itens) == 0 {
		return []proposta.ItemProposta{{
			Descricao:     fmt.Sprintf("Sistema fotovoltaico %.2f kWp", res.PotenciaInstaladaKWp),
			Quantidade:    decimal.NewFromInt(1),
			ValorUnitario: total,
		}}
	}
	if instalacao := total.Sub(equipamentos); instalacao.IsPositive() {
		itens = append(itens, proposta.ItemProposta{
			Descricao:     "Projeto, instalação e homologação",
			Quantidade:    decimal.NewFromInt(1),
			ValorUnitario: instalacao,
		})
	}
	return itens
}

// POST /solar/projetos/{id}/gerar-proposta
func (h *Handler) GerarProposta(w http.ResponseWriter, r *http.Request) {
	id, err := utils.IDParam(r, "id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var req GerarPropostaRequest
	if r.ContentLength != 0 && !utils.DecodificarJSON(w, r, &req) {
		return
	}
	if req.ModoPagamento == "" {
		req.ModoPagamento = proposta.ModoAVista
	}

	agora := h.Agora()
	hoje := utils.Dia(agora)
	dias := h.Padroes(r.Context()).DiasValidadeProposta
	var pc proposta.PropostaComercial
	err = h.DB.Transaction(func(tx *gorm.DB) error {
		p, err := h.Projetos.BuscarPorID(tx, id)
		if err != nil {
			return err
		}
		if p.PropostaID != nil {
			return ErrPropostaJaGerada
		}
		pc = proposta.PropostaComercial{
			ClienteID:          p.ClienteID,
			Titulo:             fmt.Sprintf("Sistema fotovoltaico %.2f kWp - %s", p.Resultado.PotenciaInstaladaKWp, p.Nome),
			Descricao:          fmt.Sprintf("Geração estimada de %.0f kWh/mês com %d módulos.", p.Resultado.GeracaoMensalKWh, p.Resultado.QuantidadePaineis),
			Validade:           hoje.AddDate(0, 0, dias),
			ModoPagamento:      req.ModoPagamento,
			Entrada:            req.Entrada,
			QtdParcelas:        req.QtdParcelas,
			PrimeiroVencimento: hoje,
			ProjetoSolarID:     &p.ID,
			Itens:              ItensProposta(p),
		}
		if !req.PrimeiroVencimento.IsZero() {
			pc.PrimeiroVencimento = req.PrimeiroVencimento.Time
		}
		if err := proposta.Abrir(tx, &pc, agora); err != nil {
			return err
		}
		return tx.Model(&ProjetoSolar{}).Where("id = ?", p.ID).Update("proposta_id", pc.ID).Error
	})
	if err != nil {
		h.responderErro(w, r, "erro ao gerar proposta", err)
		return
	}
	utils.ResponderJSON(w, http.StatusCreated, pc)
}
