package domain

import "time"

// Condition — состояние доставленного товара.
type Condition string

const (
	ConditionNew     Condition = "New"
	ConditionGood    Condition = "Good"
	ConditionAverage Condition = "Average"
	ConditionDamaged Condition = "Damaged"
)

// Conditions — допустимые значения в порядке отображения.
var Conditions = []Condition{ConditionNew, ConditionGood, ConditionAverage, ConditionDamaged}

// Valid сообщает, входит ли значение в список допустимых.
func (c Condition) Valid() bool {
	for _, known := range Conditions {
		if c == known {
			return true
		}
	}

	return false
}

// ProofOfDelivery — подтверждение получения заказа: фото, оценка,
// состояние товара и отзыв.
type ProofOfDelivery struct {
	SubmissionID string // uuid
	ImageURI     string
	ObjectKey    string // ключ фото в объектном хранилище
	Rating       int    // 1..5
	Condition    Condition
	Feedback     string
	SubmittedAt  time.Time
}

func NewProofOfDelivery(submissionID, imageURI string, rating int, condition Condition, feedback string) *ProofOfDelivery {
	return &ProofOfDelivery{
		SubmissionID: submissionID,
		ImageURI:     imageURI,
		Rating:       rating,
		Condition:    condition,
		Feedback:     feedback,
		SubmittedAt:  time.Now().UTC(),
	}
}
