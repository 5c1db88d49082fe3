package commands

import (
	"context"
	"io"
	"log/slog"

	"lodgekeeper/internal/domain/voucher"
	reqdto "lodgekeeper/internal/handler/dto/request"
	"lodgekeeper/internal/infra"
	"lodgekeeper/internal/pkg/clock"
	"lodgekeeper/internal/pkg/errs"
	"lodgekeeper/internal/pkg/voucherparse"
	"lodgekeeper/internal/usecase/queries"
	"lodgekeeper/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrVoucherNotFound         = errs.New("voucher not found")
	ErrVoucherAlreadyConfirmed = errs.New("voucher already confirmed")
	ErrVoucherStorageFailed    = errs.New("failed to store voucher image")
)

// TextExtractor is the OCR port. Extraction failures are soft: the voucher
// still enters review with empty fields.
type TextExtractor interface {
	ExtractText(ctx context.Context, imagePath string) (string, error)
}

// ImageStore persists uploaded voucher files and hands back the path the
// voucher record keeps.
type ImageStore interface {
	Save(ctx context.Context, filename string, content io.Reader) (string, error)
}

type UploadVoucherInput struct {
	Filename   string
	Content    io.Reader
	UploadedBy uuid.UUID
}

type VoucherCommands interface {
	UploadVoucher(ctx context.Context, input UploadVoucherInput) (*queries.VoucherView, error)
	ConfirmVoucher(ctx context.Context, id uuid.UUID, req reqdto.ConfirmVoucherRequest, userID uuid.UUID, idempotencyKey *uuid.UUID) (*queries.ReservationView, error)
}

type voucherCommandsImpl struct {
	uow              shared.UnitOfWork
	images           ImageStore
	ocr              TextExtractor
	voucherViews     queries.VoucherQueries
	reservationViews queries.ReservationQueries
	clock            clock.Clock
}

func NewVoucherCommands(
	uow shared.UnitOfWork,
	images ImageStore,
	ocr TextExtractor,
	voucherViews queries.VoucherQueries,
	reservationViews queries.ReservationQueries,
	clk clock.Clock,
) VoucherCommands {
	return &voucherCommandsImpl{
		uow:              uow,
		images:           images,
		ocr:              ocr,
		voucherViews:     voucherViews,
		reservationViews: reservationViews,
		clock:            clk,
	}
}

func (c *voucherCommandsImpl) UploadVoucher(ctx context.Context, input UploadVoucherInput) (*queries.VoucherView, error) {
	imagePath, err := c.images.Save(ctx, input.Filename, input.Content)
	if err != nil {
		return nil, errs.Mark(err, ErrVoucherStorageFailed)
	}

	ocrText, err := c.ocr.ExtractText(ctx, imagePath)
	if err != nil {
		slog.Warn("voucher OCR failed, continuing with empty extraction",
			"image_path", imagePath, "error", err.Error())
		ocrText = ""
	}

	extracted := voucherparse.Parse(ocrText)
	entity, err := voucher.NewVoucher(imagePath, ocrText, toExtraction(extracted), input.UploadedBy)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	var voucherID uuid.UUID
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		voucherID, err = tx.Vouchers().Create(ctx, tx.DB(), entity)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	view, err := c.voucherViews.GetByID(ctx, voucherID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return view, nil
}

// ConfirmVoucher books the reviewed voucher through the same admission path
// as manual entry and links the voucher to the created reservation, all in
// one transaction.
func (c *voucherCommandsImpl) ConfirmVoucher(ctx context.Context, id uuid.UUID, req reqdto.ConfirmVoucherRequest, userID uuid.UUID, idempotencyKey *uuid.UUID) (*queries.ReservationView, error) {
	checkIn, checkOut, err := req.ParsedDates()
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidDateRange)
	}

	var reservationID uuid.UUID
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if idempotencyKey != nil {
			// The voucher ID is part of the request identity, not just the body.
			replayID, err := claimIdempotencyKey(ctx, tx, *idempotencyKey, userID,
				"POST /api/vouchers/confirm", hashRequest(struct {
					VoucherID uuid.UUID
					Body      reqdto.ConfirmVoucherRequest
				}{id, req}), c.clock.Now())
			if err != nil {
				return err
			}
			if replayID != nil {
				reservationID = *replayID
				return nil
			}
		}

		snap, err := tx.Reads().VoucherByID(ctx, id)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrVoucherNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		if voucher.Status(snap.Status) == voucher.StatusConfirmed {
			return ErrVoucherAlreadyConfirmed
		}

		voucherNumber := req.VoucherNumber
		if voucherNumber == nil {
			voucherNumber = snap.VoucherNumber
		}

		booking, err := NewBookingRequest(req.RoomID, req.CustomerName, voucherNumber, checkIn, checkOut, req.Note)
		if err != nil {
			return err
		}

		reservationID, err = admitBooking(ctx, tx, booking)
		if err != nil {
			return err
		}

		entity := voucher.ReconstructVoucher(
			snap.ID,
			snap.ImagePath,
			snap.OCRText,
			voucher.Extraction{
				CustomerName:  &req.CustomerName,
				VoucherNumber: voucherNumber,
				CheckInDate:   &checkIn,
				CheckOutDate:  &checkOut,
			},
			voucher.Status(snap.Status),
			snap.ReservationID,
			snap.UploadedBy,
			snap.CreatedAt,
			snap.UpdatedAt,
		)

		if err := entity.Confirm(reservationID); err != nil {
			return ErrVoucherAlreadyConfirmed
		}

		if err := tx.Vouchers().Update(ctx, tx.DB(), entity); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		if idempotencyKey != nil {
			if err := tx.Idempotency().MarkCompleted(ctx, tx.DB(), *idempotencyKey, reservationID); err != nil {
				return errs.Mark(err, ErrDatabaseOperationFailed)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	view, err := c.reservationViews.GetByID(ctx, reservationID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return view, nil
}

func toExtraction(e voucherparse.Extracted) voucher.Extraction {
	ex := voucher.Extraction{
		CheckInDate:  e.CheckInDate,
		CheckOutDate: e.CheckOutDate,
	}
	if e.CustomerName != "" {
		name := e.CustomerName
		ex.CustomerName = &name
	}
	if e.VoucherNumber != "" {
		number := e.VoucherNumber
		ex.VoucherNumber = &number
	}
	return ex
}
