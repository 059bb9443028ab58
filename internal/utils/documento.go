package utils

import "strings"

// SomenteDigitos remove tudo que não for dígito (CPF, CNPJ, CEP, telefone).
func SomenteDigitos(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func todosIguais(d string) bool {
	for i := 1; i < len(d); i++ {
		if d[i] != d[0] {
			return false
		}
	}
	return true
}

func digitoVerificador(d string, pesos []int) byte {
	soma := 0
	for i, p := range pesos {
		soma += int(d[i]-'0') * p
	}
	resto := soma % 11
	if resto < 2 {
		return '0'
	}
	return byte('0' + 11 - resto)
}

// CNPJValido valida tamanho e dígitos verificadores do CNPJ
func CNPJValido(cnpj string) bool {
	d := SomenteDigitos(cnpj)
	if len(d) != 14 || todosIguais(d) {
		return false
	}
	p1 := []int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	p2 := []int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	return d[12] == digitoVerificador(d, p1) && d[13] == digitoVerificador(d, p2)
}

// CPFValido valida tamanho e dígitos verificadores do CPF
func CPFValido(cpf string) bool {
	d := SomenteDigitos(cpf)
	if len(d) != 11 || todosIguais(d) {
		return false
	}
	p1 := []int{10, 9, 8, 7, 6, 5, 4, 3, 2}
	p2 := []int{11, 10, 9, 8, 7, 6, 5, 4, 3, 2}
	return d[9] == digitoVerificador(d, p1) && d[10] == digitoVerificador(d, p2)
}
