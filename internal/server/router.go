package server

import (
	"context"
	"net/http"

	"github.com/KromaEnergia/api-erp/internal/auth"
	"github.com/KromaEnergia/api-erp/internal/cliente"
	"github.com/KromaEnergia/api-erp/internal/comentario"
	"github.com/KromaEnergia/api-erp/internal/config"
	"github.com/KromaEnergia/api-erp/internal/configuracao"
	"github.com/KromaEnergia/api-erp/internal/consulta"
	"github.com/KromaEnergia/api-erp/internal/documento"
	"github.com/KromaEnergia/api-erp/internal/financeiro"
	"github.com/KromaEnergia/api-erp/internal/fornecedor"
	"github.com/KromaEnergia/api-erp/internal/logger"
	"github.com/KromaEnergia/api-erp/internal/notificacao"
	"github.com/KromaEnergia/api-erp/internal/ordemservico"
	"github.com/KromaEnergia/api-erp/internal/precificacao"
	"github.com/KromaEnergia/api-erp/internal/produto"
	"github.com/KromaEnergia/api-erp/internal/proposta"
	"github.com/KromaEnergia/api-erp/internal/solar"
	"github.com/KromaEnergia/api-erp/internal/usuario"
	"github.com/KromaEnergia/api-erp/internal/utils"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Dependencias reúne o que o roteador precisa já construído
type Dependencias struct {
	DB           *gorm.DB
	Log          *zap.Logger
	HTTP         config.HTTPConfig
	Configuracao *configuracao.Servico
	Notificador  notificacao.Notificador
	Consultor    consulta.Consultor
	Renderer     documento.Renderer
}

// padroesSolar completa o cálculo solar com os valores da empresa
func padroesSolar(s *configuracao.Servico) func(ctx context.Context) solar.Padroes {
	return func(ctx context.Context) solar.Padroes {
		p := solar.Padroes{
			TarifaKWh:            configuracao.TarifaPadrao,
			IrradiacaoKWhM2Dia:   configuracao.IrradiacaoPadrao,
			TarifaFioB:           configuracao.TarifaFioBPadrao,
			DiasValidadeProposta: configuracao.ValidadePropostaPadrao,
		}
		c, err := s.Obter(ctx)
		if err != nil {
			logger.FromContext(ctx).Warn("usando padrões solares fixos", zap.Error(err))
			return p
		}
		if c.TarifaPadraoKWh > 0 {
			p.TarifaKWh = c.TarifaPadraoKWh
		}
		if c.IrradiacaoPadrao > 0 {
			p.IrradiacaoKWhM2Dia = c.IrradiacaoPadrao
		}
		p.TarifaFioB = c.TarifaFioB
		if c.ValidadePropostaDias > 0 {
			p.DiasValidadeProposta = c.ValidadePropostaDias
		}
		return p
	}
}

func health(db *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(r.Context())
		}
		if err != nil {
			utils.ResponderJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "erro", "banco": err.Error()})
			return
		}
		utils.ResponderJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func admin(f http.HandlerFunc) http.Handler {
	return auth.RequireAdmin(f)
}

// NewRouter registra todas as rotas. Fora de /health, /auth e do JWKS tudo exige token.
func NewRouter(d Dependencias) (http.Handler, error) {
	gerador, err := documento.NewGerador()
	if err != nil {
		return nil, err
	}
	db := d.DB

	usuarioHandler := usuario.NewHandler(db)
	clienteHandler := cliente.NewHandler(db, d.Notificador)
	fornecedorHandler := fornecedor.NewHandler(fornecedor.NewRepository(db), d.Notificador)
	produtoHandler := produto.NewHandler(produto.NewRepository(db))
	osHandler := ordemservico.NewHandler(db)
	comentarioHandler := comentario.NewHandler(db)
	propostaHandler := proposta.NewHandler(db, d.Notificador)
	propostaHandler.DiasValidade = d.Configuracao.DiasValidade
	solarHandler := solar.NewHandler(db)
	solarHandler.Padroes = padroesSolar(d.Configuracao)
	precificacaoHandler := precificacao.NewHandler(precificacao.NewRepository(db))
	financeiroHandler := financeiro.NewHandler(db)
	configuracaoHandler := configuracao.NewHandler(d.Configuracao)
	consultaHandler := consulta.NewHandler(d.Consultor)
	documentoHandler := documento.NewHandler(db, gerador, d.Renderer, d.Configuracao)

	r := mux.NewRouter()
	r.Use(logger.Middleware(d.Log))

	// Rotas públicas
	r.HandleFunc("/health", health(db)).Methods(http.MethodGet)
	r.HandleFunc("/auth/login", usuarioHandler.Login).Methods(http.MethodPost)
	r.HandleFunc("/auth/refresh", auth.RefreshHTTPHandler(db, usuario.Lookup)).Methods(http.MethodPost)
	r.HandleFunc("/auth/logout", auth.LogoutHTTPHandler(db)).Methods(http.MethodPost)
	r.HandleFunc("/.well-known/jwks.json", auth.JWKSHandler).Methods(http.MethodGet)

	api := r.PathPrefix("/").Subrouter()
	api.Use(auth.MiddlewareAutenticacao)

	// Usuários
	api.HandleFunc("/usuarios/me", usuarioHandler.Me).Methods(http.MethodGet)
	api.HandleFunc("/usuarios/me/senha", usuarioHandler.AlterarSenha).Methods(http.MethodPut)
	api.Handle("/usuarios", admin(usuarioHandler.List)).Methods(http.MethodGet)
	api.Handle("/usuarios", admin(usuarioHandler.Create)).Methods(http.MethodPost)
	api.Handle("/usuarios/{id}", admin(usuarioHandler.GetByID)).Methods(http.MethodGet)
	api.Handle("/usuarios/{id}", admin(usuarioHandler.Update)).Methods(http.MethodPut)
	api.Handle("/usuarios/{id}", admin(usuarioHandler.Delete)).Methods(http.MethodDelete)
	api.Handle("/usuarios/{id}/senha-temporaria", admin(usuarioHandler.SenhaTemporaria)).Methods(http.MethodPost)

	// Clientes
	api.HandleFunc("/clientes", clienteHandler.Listar).Methods(http.MethodGet)
	api.HandleFunc("/clientes", clienteHandler.Criar).Methods(http.MethodPost)
	api.HandleFunc("/clientes/exportar", clienteHandler.Exportar).Methods(http.MethodGet)
	api.HandleFunc("/clientes/{id}", clienteHandler.BuscarPorID).Methods(http.MethodGet)
	api.HandleFunc("/clientes/{id}", clienteHandler.Atualizar).Methods(http.MethodPut)
	api.HandleFunc("/clientes/{id}", clienteHandler.Deletar).Methods(http.MethodDelete)

	// Fornecedores
	api.HandleFunc("/fornecedores", fornecedorHandler.ListFornecedores).Methods(http.MethodGet)
	api.HandleFunc("/fornecedores", fornecedorHandler.CreateFornecedor).Methods(http.MethodPost)
	api.HandleFunc("/fornecedores/{id}", fornecedorHandler.GetFornecedor).Methods(http.MethodGet)
	api.HandleFunc("/fornecedores/{id}", fornecedorHandler.UpdateFornecedor).Methods(http.MethodPut)
	api.HandleFunc("/fornecedores/{id}", fornecedorHandler.DeleteFornecedor).Methods(http.MethodDelete)

	// Produtos
	api.HandleFunc("/produtos", produtoHandler.ListProdutos).Methods(http.MethodGet)
	api.HandleFunc("/produtos", produtoHandler.CreateProduto).Methods(http.MethodPost)
	api.HandleFunc("/produtos/{id}", produtoHandler.GetProduto).Methods(http.MethodGet)
	api.HandleFunc("/produtos/{id}", produtoHandler.UpdateProduto).Methods(http.MethodPut)
	api.HandleFunc("/produtos/{id}", produtoHandler.DeleteProduto).Methods(http.MethodDelete)

	// Ordens de serviço
	api.HandleFunc("/ordens-servico", osHandler.Listar).Methods(http.MethodGet)
	api.HandleFunc("/ordens-servico", osHandler.Criar).Methods(http.MethodPost)
	api.HandleFunc("/ordens-servico/{id}", osHandler.BuscarPorID).Methods(http.MethodGet)
	api.HandleFunc("/ordens-servico/{id}", osHandler.Atualizar).Methods(http.MethodPut)
	api.HandleFunc("/ordens-servico/{id}", osHandler.Deletar).Methods(http.MethodDelete)
	api.HandleFunc("/ordens-servico/{id}/status", osHandler.MudarStatus).Methods(http.MethodPatch)
	api.HandleFunc("/ordens-servico/{id}/pdf", documentoHandler.OrdemServico).Methods(http.MethodGet)
	api.HandleFunc("/ordens-servico/{id}/comentarios", comentarioHandler.ListarPor(comentario.RefOrdemServico)).Methods(http.MethodGet)
	api.HandleFunc("/ordens-servico/{id}/comentarios", comentarioHandler.CriarPara(comentario.RefOrdemServico)).Methods(http.MethodPost)

	// Propostas
	api.HandleFunc("/propostas", propostaHandler.Listar).Methods(http.MethodGet)
	api.HandleFunc("/propostas", propostaHandler.Criar).Methods(http.MethodPost)
	api.HandleFunc("/propostas/{id}", propostaHandler.BuscarPorID).Methods(http.MethodGet)
	api.HandleFunc("/propostas/{id}", propostaHandler.Atualizar).Methods(http.MethodPut)
	api.HandleFunc("/propostas/{id}", propostaHandler.Deletar).Methods(http.MethodDelete)
	api.HandleFunc("/propostas/{id}/enviar", propostaHandler.Enviar).Methods(http.MethodPost)
	api.HandleFunc("/propostas/{id}/recusar", propostaHandler.Recusar).Methods(http.MethodPost)
	api.HandleFunc("/propostas/{id}/aprovar", propostaHandler.Aprovar).Methods(http.MethodPost)
	api.HandleFunc("/propostas/{id}/gerar-os", propostaHandler.GerarOS).Methods(http.MethodPost)
	api.HandleFunc("/propostas/{id}/pdf", documentoHandler.Proposta).Methods(http.MethodGet)
	api.HandleFunc("/propostas/{id}/comentarios", comentarioHandler.ListarPor(comentario.RefProposta)).Methods(http.MethodGet)
	api.HandleFunc("/propostas/{id}/comentarios", comentarioHandler.CriarPara(comentario.RefProposta)).Methods(http.MethodPost)

	// Comentários
	api.HandleFunc("/comentarios/{id}", comentarioHandler.Atualizar).Methods(http.MethodPut)
	api.HandleFunc("/comentarios/{id}", comentarioHandler.Remover).Methods(http.MethodDelete)

	// Solar
	api.HandleFunc("/solar/calcular", solarHandler.Calcular).Methods(http.MethodPost)
	api.HandleFunc("/solar/paineis", solarHandler.ListarPaineis).Methods(http.MethodGet)
	api.HandleFunc("/solar/paineis", solarHandler.CriarPainel).Methods(http.MethodPost)
	api.HandleFunc("/solar/paineis/{id}", solarHandler.BuscarPainel).Methods(http.MethodGet)
	api.HandleFunc("/solar/paineis/{id}", solarHandler.AtualizarPainel).Methods(http.MethodPut)
	api.HandleFunc("/solar/paineis/{id}", solarHandler.DeletarPainel).Methods(http.MethodDelete)
	api.HandleFunc("/solar/inversores", solarHandler.ListarInversores).Methods(http.MethodGet)
	api.HandleFunc("/solar/inversores", solarHandler.CriarInversor).Methods(http.MethodPost)
	api.HandleFunc("/solar/inversores/{id}", solarHandler.BuscarInversor).Methods(http.MethodGet)
	api.HandleFunc("/solar/inversores/{id}", solarHandler.AtualizarInversor).Methods(http.MethodPut)
	api.HandleFunc("/solar/inversores/{id}", solarHandler.DeletarInversor).Methods(http.MethodDelete)
	api.HandleFunc("/solar/projetos", solarHandler.ListarProjetos).Methods(http.MethodGet)
	api.HandleFunc("/solar/projetos", solarHandler.CriarProjeto).Methods(http.MethodPost)
	api.HandleFunc("/solar/projetos/{id}", solarHandler.BuscarProjeto).Methods(http.MethodGet)
	api.HandleFunc("/solar/projetos/{id}", solarHandler.AtualizarProjeto).Methods(http.MethodPut)
	api.HandleFunc("/solar/projetos/{id}", solarHandler.DeletarProjeto).Methods(http.MethodDelete)
	api.HandleFunc("/solar/projetos/{id}/balanco", solarHandler.Balanco).Methods(http.MethodGet)
	api.HandleFunc("/solar/projetos/{id}/gerar-proposta", solarHandler.GerarProposta).Methods(http.MethodPost)
	api.HandleFunc("/solar/projetos/{id}/pdf", documentoHandler.ProjetoSolar).Methods(http.MethodGet)

	// Precificação
	api.HandleFunc("/precificacao/calcular", precificacaoHandler.Calcular).Methods(http.MethodPost)
	api.HandleFunc("/precificacao", precificacaoHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/precificacao", precificacaoHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/precificacao/{id}", precificacaoHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/precificacao/{id}", precificacaoHandler.Update).Methods(http.MethodPut)
	api.HandleFunc("/precificacao/{id}", precificacaoHandler.Delete).Methods(http.MethodDelete)

	// Financeiro
	api.HandleFunc("/financeiro/resumo", financeiroHandler.Resumo).Methods(http.MethodGet)
	api.HandleFunc("/financeiro/lancamentos", financeiroHandler.Listar).Methods(http.MethodGet)
	api.HandleFunc("/financeiro/lancamentos", financeiroHandler.Criar).Methods(http.MethodPost)
	api.HandleFunc("/financeiro/lancamentos/exportar", financeiroHandler.Exportar).Methods(http.MethodGet)
	api.HandleFunc("/financeiro/lancamentos/{id}", financeiroHandler.BuscarPorID).Methods(http.MethodGet)
	api.HandleFunc("/financeiro/lancamentos/{id}", financeiroHandler.Atualizar).Methods(http.MethodPut)
	api.HandleFunc("/financeiro/lancamentos/{id}", financeiroHandler.Deletar).Methods(http.MethodDelete)
	api.HandleFunc("/financeiro/lancamentos/{id}/pagar", financeiroHandler.Pagar).Methods(http.MethodPost)
	api.HandleFunc("/financeiro/lancamentos/{id}/cancelar", financeiroHandler.Cancelar).Methods(http.MethodPost)

	// Configuração da empresa
	api.HandleFunc("/configuracao", configuracaoHandler.Obter).Methods(http.MethodGet)
	api.Handle("/configuracao", admin(configuracaoHandler.Atualizar)).Methods(http.MethodPut)
	api.Handle("/configuracao/logo", admin(configuracaoHandler.AtualizarLogo)).Methods(http.MethodPut)

	// Consultas externas
	api.HandleFunc("/consultas/cep/{cep}", consultaHandler.CEP).Methods(http.MethodGet)
	api.HandleFunc("/consultas/cnpj/{cnpj}", consultaHandler.CNPJ).Methods(http.MethodGet)

	c := cors.New(cors.Options{
		AllowedOrigins:   d.HTTP.CORSAllowOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", logger.HeaderRequestID},
		ExposedHeaders:   []string{"Content-Disposition", logger.HeaderRequestID},
		AllowCredentials: true,
	})
	return c.Handler(r), nil
}
