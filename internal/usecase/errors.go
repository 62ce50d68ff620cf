package usecase

// DomainError é um erro de regra de negócio (dados de lead incompletos,
// entrada inválida no registro). Não derruba o processo nem aborta o lote.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func NewDomainError(code, message string) *DomainError {
	return &DomainError{Code: code, Message: message}
}

func IsDomainError(err error) bool {
	_, ok := err.(*DomainError)
	return ok
}

// TechnicalError é uma falha de infraestrutura (planilha inacessível,
// gateway fora). É registrada e contada; só configuração aborta o processo.
type TechnicalError struct {
	Code    string
	Message string
}

func (e *TechnicalError) Error() string {
	return e.Message
}

func NewTechnicalError(code, message string) *TechnicalError {
	return &TechnicalError{Code: code, Message: message}
}

func IsTechnicalError(err error) bool {
	_, ok := err.(*TechnicalError)
	return ok
}
