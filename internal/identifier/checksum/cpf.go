package checksum

// CPFValidatorName is the registry name the CPF validator registers
// under; identifier types reference it in their Validator field.
const CPFValidatorName = "br.gov.cpf"

// CPF validates Brazilian taxpayer registry numbers (Cadastro de
// Pessoas Físicas): eleven digits where positions 10 and 11 are check
// digits over the preceding ones.
type CPF struct{}

// NewCPF returns the CPF check-digit validator.
func NewCPF() CPF { return CPF{} }

func (CPF) Name() string { return "Brazilian CPF" }

// IsValid checks both CPF check digits. The identifier must already be
// in digit-only form; any other character is unallowed rather than
// merely invalid, since this validator cannot interpret it.
func (c CPF) IsValid(identifier string) (bool, error) {
	for i := 0; i < len(identifier); i++ {
		if identifier[i] < '0' || identifier[i] > '9' {
			return false, ErrUnallowedIdentifier
		}
	}
	return c.validDigits(identifier), nil
}

func (CPF) validDigits(cpf string) bool {
	if len(cpf) != 11 {
		return false
	}

	// Degenerate class: all eleven digits identical (e.g. 00000000000)
	// satisfies the arithmetic but is never issued.
	same := true
	for i := 1; i < 11; i++ {
		if cpf[i] != cpf[0] {
			same = false
			break
		}
	}
	if same {
		return false
	}

	var d [11]int
	for i := 0; i < 11; i++ {
		d[i] = int(cpf[i] - '0')
	}

	// First check digit: weights 10..2 over digits 1-9.
	sum := 0
	for i := 0; i < 9; i++ {
		sum += d[i] * (10 - i)
	}
	check := 11 - sum%11
	if check >= 10 {
		check = 0
	}
	if check != d[9] {
		return false
	}

	// Second check digit: weights 11..2 over digits 1-10.
	sum = 0
	for i := 0; i < 10; i++ {
		sum += d[i] * (11 - i)
	}
	check = 11 - sum%11
	if check >= 10 {
		check = 0
	}
	return check == d[10]
}
