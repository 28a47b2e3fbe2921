package http

import (
	"net/http"
	"time"

	"github.com/DRSN-tech/go-storefront/internal/usecase"
	"github.com/DRSN-tech/go-storefront/pkg/logger"
)

type ProofHandler struct {
	proofUsecase usecase.ProofUC
	logger       logger.Logger
}

func NewProofHandler(proofUsecase usecase.ProofUC, logger logger.Logger) *ProofHandler {
	return &ProofHandler{proofUsecase: proofUsecase, logger: logger}
}

type captureResponse struct {
	ImageURI string `json:"imageUri"`
}

type submitProofRequest struct {
	ImageURI  string `json:"imageUri"`
	Rating    int    `json:"rating"`
	Condition string `json:"condition"`
	Feedback  string `json:"feedback"`
}

type submitProofResponse struct {
	SubmissionID string `json:"submissionId"`
	SubmittedAt  string `json:"submittedAt"`
}

// capture
//
//	@Summary		Съёмка фото подтверждения
//	@Description	Запускает камеру и возвращает URI сделанного снимка
//	@Tags			proof
//	@Produce		json
//	@Success		200	{object}	captureResponse
//	@Failure		403	{object}	ErrorResponse	"Нет доступа к камере"
//	@Router			/proof/capture [post]
func (h *ProofHandler) capture(w http.ResponseWriter, r *http.Request) {
	uri, err := h.proofUsecase.Capture(r.Context())
	if err != nil {
		h.logger.Warnf("capture failed: %v", err)
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, &captureResponse{ImageURI: uri})
}

// submit
//
//	@Summary		Отправка подтверждения доставки
//	@Description	Фото уходит в объектное хранилище, заявка — в очередь отправки
//	@Tags			proof
//	@Accept			json
//	@Produce		json
//	@Param			proof	body		submitProofRequest	true	"Подтверждение"
//	@Success		202		{object}	submitProofResponse
//	@Failure		400		{object}	ErrorResponse	"Ошибка валидации"
//	@Failure		503		{object}	ErrorResponse	"Очередь отправки закрыта"
//	@Router			/proof [post]
func (h *ProofHandler) submit(w http.ResponseWriter, r *http.Request) {
	var req submitProofRequest
	if err := decodeJSONBody(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	res, err := h.proofUsecase.Submit(r.Context(), usecase.NewSubmitProofReq(req.ImageURI, req.Rating, req.Condition, req.Feedback))
	if err != nil {
		h.logger.Warnf("proof submit failed: %v", err)
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusAccepted, &submitProofResponse{
		SubmissionID: res.SubmissionID,
		SubmittedAt:  res.SubmittedAt.Format(time.RFC3339),
	})
}
