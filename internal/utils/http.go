package utils

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/KromaEnergia/api-erp/internal/logger"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrIDInvalido indica um id de rota ausente ou não numérico
var ErrIDInvalido = errors.New("ID inválido")

// IDParam lê um id numérico da rota
func IDParam(r *http.Request, nome string) (uint, error) {
	id, err := strconv.Atoi(mux.Vars(r)[nome])
	if err != nil || id <= 0 {
		return 0, ErrIDInvalido
	}
	return uint(id), nil
}

// UintQuery lê um id opcional da query string
func UintQuery(r *http.Request, nome string) (*uint, error) {
	s := r.URL.Query().Get(nome)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return nil, err
	}
	u := uint(v)
	return &u, nil
}

// ResponderJSON escreve v como JSON com o status informado
func ResponderJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// DecodificarJSON lê o corpo em v e valida as tags. Em caso de erro já responde 400.
func DecodificarJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return false
	}
	if err := Validar(v); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

// ErroInterno registra err no logger da requisição e responde 500 com msg
func ErroInterno(w http.ResponseWriter, r *http.Request, msg string, err error) {
	logger.FromContext(r.Context()).Error(msg, zap.Error(err))
	http.Error(w, msg, http.StatusInternalServerError)
}

// ErroBanco responde 404 para registro inexistente e 500 para o resto
func ErroBanco(w http.ResponseWriter, r *http.Request, naoEncontrado, msg string, err error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		http.Error(w, naoEncontrado, http.StatusNotFound)
		return
	}
	ErroInterno(w, r, msg, err)
}

// DataQuery lê uma data (2006-01-02) da query string; vazio retorna nil
func DataQuery(r *http.Request, nome string) (*time.Time, error) {
	s := r.URL.Query().Get(nome)
	if s == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// IncluirInativos lê ?inativos=true
func IncluirInativos(r *http.Request) bool {
	v, _ := strconv.ParseBool(r.URL.Query().Get("inativos"))
	return v
}
