package letter

import (
	"github.com/ouroboros-foundation/portal/internal/core/common/validation"
)

type SendLetterDTO struct {
	RecipientID int64  `json:"recipient_id"`
	Subject     string `json:"subject"`
	Body        string `json:"body"`
}

func (d SendLetterDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("recipient_id", d.RecipientID).Required()
	if err := v.Validate(); err != nil {
		return err
	}
	if err := validation.ValidateTitle(d.Subject); err != nil {
		return err
	}
	if err := validation.ValidateBody(d.Body); err != nil {
		return err
	}
	return nil
}

type LetterListResponse struct {
	Letters []*Letter `json:"letters"`
}
