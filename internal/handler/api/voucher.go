package api

import (
	"errors"
	"net/http"

	reqdto "lodgekeeper/internal/handler/dto/request"
	resdto "lodgekeeper/internal/handler/dto/response"
	"lodgekeeper/internal/handler/middleware"
	"lodgekeeper/internal/pkg/config"
	"lodgekeeper/internal/usecase/commands"
	"lodgekeeper/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type VoucherHandler struct {
	voucherCommands commands.VoucherCommands
	voucherQueries  queries.VoucherQueries
	maxUploadBytes  int64
}

func NewVoucherHandler(
	voucherCommands commands.VoucherCommands,
	voucherQueries queries.VoucherQueries,
	cfg config.Config,
) *VoucherHandler {
	return &VoucherHandler{
		voucherCommands: voucherCommands,
		voucherQueries:  voucherQueries,
		maxUploadBytes:  cfg.Media.MaxUploadBytes,
	}
}

// @Summary Upload voucher
// @Description Upload a voucher image; OCR prefills the review form
// @Tags vouchers
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param image formData file true "Voucher image"
// @Success 201 {object} queries.VoucherView
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 413 {object} map[string]string
// @Router /vouchers [post]
func (h *VoucherHandler) UploadVoucher(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Voucher image is required",
		})
		return
	}

	if fileHeader.Size > h.maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{
			"error": "Uploaded file is too large",
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Could not read uploaded file",
		})
		return
	}
	defer file.Close()

	view, err := h.voucherCommands.UploadVoucher(c.Request.Context(), commands.UploadVoucherInput{
		Filename:   fileHeader.Filename,
		Content:    file,
		UploadedBy: userID,
	})
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrVoucherStorageFailed):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Unsupported or unreadable voucher file",
			})
		case errors.Is(err, commands.ErrDomainValidation):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Domain validation failed",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, view)
}

// @Summary List pending vouchers
// @Description Vouchers awaiting operator review, newest first
// @Tags vouchers
// @Produce json
// @Security BearerAuth
// @Success 200 {array} queries.VoucherView
// @Failure 401 {object} map[string]string
// @Router /vouchers/pending [get]
func (h *VoucherHandler) ListPendingVouchers(c *gin.Context) {
	vouchers, err := h.voucherQueries.ListPending(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, vouchers)
}

// @Summary Get voucher
// @Description Get voucher by ID, including OCR text and extracted fields
// @Tags vouchers
// @Produce json
// @Security BearerAuth
// @Param id path string true "Voucher ID"
// @Success 200 {object} queries.VoucherView
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /vouchers/{id} [get]
func (h *VoucherHandler) GetVoucher(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid voucher ID format",
		})
		return
	}

	view, err := h.voucherQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrVoucherNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Voucher not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, view)
}

// @Summary Confirm voucher
// @Description Book the reviewed voucher details and link the voucher to the reservation
// @Tags vouchers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Voucher ID"
// @Param Idempotency-Key header string false "Key for safe retries of the same request"
// @Param request body reqdto.ConfirmVoucherRequest true "Reviewed booking details"
// @Success 201 {object} resdto.ReservationResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]interface{}
// @Failure 422 {object} map[string]string
// @Router /vouchers/{id}/confirm [post]
func (h *VoucherHandler) ConfirmVoucher(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid voucher ID format",
		})
		return
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	idempotencyKey, err := getIdempotencyKey(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid Idempotency-Key header",
		})
		return
	}

	var req reqdto.ConfirmVoucherRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	view, err := h.voucherCommands.ConfirmVoucher(c.Request.Context(), id, req, userID, idempotencyKey)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrVoucherNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Voucher not found",
			})
		case errors.Is(err, commands.ErrVoucherAlreadyConfirmed):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Voucher is already confirmed",
			})
		default:
			writeBookingError(c, err)
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromReservationView(view))
}
