package message

import "clinid/internal/identifier/validator"

// DefaultCatalog carries the built-in messages for the pipeline's
// failure kinds. Deployments may replace or extend it before
// constructing the Renderer.
func DefaultCatalog() Catalog {
	return Catalog{
		"en": {
			validator.KeyIdentifierNull:    "Identifier is required.",
			validator.KeyIdentifierBlank:   "Identifier cannot be blank.",
			validator.KeyTypeRequired:      "Identifier type is required.",
			validator.KeyInvalidFormat:     "Identifier \"{0}\" does not match the required format: {1}",
			validator.KeyInvalidCheckDigit: "Identifier \"{0}\" has an invalid check digit.",
			validator.KeyUnallowed:         "Identifier \"{0}\" cannot be processed by the {1} validator.",
			validator.KeyInvalidNationalID: "\"{0}\" is not a valid national ID number.",
			validator.KeyLocationRequired:  "Identifier \"{0}\" requires a location.",
			validator.KeyNotUnique:         "Identifier \"{0}\" is already in use by another patient.",
		},
		"pt-BR": {
			validator.KeyIdentifierNull:    "O identificador é obrigatório.",
			validator.KeyIdentifierBlank:   "O identificador não pode estar em branco.",
			validator.KeyTypeRequired:      "O tipo de identificador é obrigatório.",
			validator.KeyInvalidFormat:     "O identificador \"{0}\" não corresponde ao formato exigido: {1}",
			validator.KeyInvalidCheckDigit: "O identificador \"{0}\" possui dígito verificador inválido.",
			validator.KeyUnallowed:         "O identificador \"{0}\" não pode ser processado pelo validador {1}.",
			validator.KeyInvalidNationalID: "\"{0}\" não é um CPF válido.",
			validator.KeyLocationRequired:  "O identificador \"{0}\" exige um local de atendimento.",
			validator.KeyNotUnique:         "O identificador \"{0}\" já está em uso por outro paciente.",
		},
	}
}
