package conversation

import "strings"

// Categorias canônicas de veículos oferecidas na mensagem inicial.
// CategoryConsultant não é uma categoria de produto: é o marcador
// de "quero falar com um consultor" (opção 5).
const (
	CategoryEconomic   = "Carros Econômicos"
	CategorySUV        = "SUVs"
	CategoryLuxury     = "Carros de Luxo"
	CategoryUtility    = "Utilitários"
	CategoryConsultant = "consultor"
)

// CategoryConsultantRequest é o valor gravado na sessão quando o lead
// escolhe falar direto com um consultor.
const CategoryConsultantRequest = "Falar com consultor"

var numericChoices = map[string]string{
	"1": CategoryEconomic,
	"2": CategorySUV,
	"3": CategoryLuxury,
	"4": CategoryUtility,
	"5": CategoryConsultant,
}

// Palavras-chave em ordem de prioridade, com grafias acentuadas e não
// acentuadas, comparadas por substring após normalizar para maiúsculas.
var keywordChoices = []struct {
	keyword  string
	category string
}{
	{"ECONÔMICO", CategoryEconomic},
	{"ECONOMICO", CategoryEconomic},
	{"SUV", CategorySUV},
	{"LUXO", CategoryLuxury},
	{"UTILITÁRIO", CategoryUtility},
	{"UTILITARIO", CategoryUtility},
	{"CONSULTOR", CategoryConsultant},
	{"FALAR", CategoryConsultant},
}

// ResolveCategory interpreta a resposta livre do lead.
// Primeiro tenta o número exato da opção (1-5); depois as palavras-chave.
// Retorna ok=false quando nada casa. Função pura, sem efeitos colaterais.
func ResolveCategory(raw string) (category string, ok bool) {
	normalized := strings.ToUpper(strings.TrimSpace(raw))

	if cat, found := numericChoices[normalized]; found {
		return cat, true
	}

	for _, choice := range keywordChoices {
		if strings.Contains(normalized, choice.keyword) {
			return choice.category, true
		}
	}

	return "", false
}
