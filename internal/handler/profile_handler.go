package handlers

import (
	"mime/multipart"
	"net/http"

	"gyansetu/internal/models"
	"gyansetu/internal/service"
)

type UpdateProfileRequest struct {
	FirstName *string `json:"firstName" validate:"omitempty,max=100"`
	LastName  *string `json:"lastName" validate:"omitempty,max=100"`
	Username  *string `json:"username" validate:"omitempty,max=100"`
	DOB       *string `json:"dob" validate:"omitempty,max=20"`
	Gender    *string `json:"gender" validate:"omitempty,max=20"`
	Age       *int    `json:"age" validate:"omitempty,min=0,max=150"`
	Expertise *string `json:"expertise" validate:"omitempty,max=255"`
	Bio       *string `json:"bio" validate:"omitempty,max=2000"`
}

type BankDetailsRequest struct {
	AccountHolder string `json:"accountHolder" validate:"required,max=100"`
	AccountNumber string `json:"accountNumber" validate:"required,max=34"`
	IFSC          string `json:"ifsc" validate:"required,max=11"`
	UPIID         string `json:"upiId" validate:"required,max=100"`
}

func (h *Handlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	session, ok := requireSession(w, r)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	user, err := h.ProfileService.UpdateProfile(r.Context(), session.UserID, service.UpdateProfileRequest{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Username:  req.Username,
		DOB:       req.DOB,
		Gender:    req.Gender,
		Age:       req.Age,
		Expertise: req.Expertise,
		Bio:       req.Bio,
	})
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, user, http.StatusOK)
}

func (h *Handlers) UpdateBankDetails(w http.ResponseWriter, r *http.Request) {
	session, ok := requireSession(w, r)
	if !ok {
		return
	}

	var req BankDetailsRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	user, err := h.ProfileService.UpdateBankDetails(r.Context(), session.UserID, models.BankDetails{
		AccountHolder: req.AccountHolder,
		AccountNumber: req.AccountNumber,
		IFSC:          req.IFSC,
		UPIID:         req.UPIID,
	})
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, user, http.StatusOK)
}

// ChangeAvatar takes a multipart "avatar" image. Without one a random picture is chosen.
func (h *Handlers) ChangeAvatar(w http.ResponseWriter, r *http.Request) {
	session, ok := requireSession(w, r)
	if !ok {
		return
	}

	var upload *service.MediaUpload
	if isMultipart(r) {
		if !h.parseMultipart(w, r) {
			return
		}
		var file multipart.File
		upload, file, ok = formFile(w, r, "avatar", imageTypes)
		if !ok {
			return
		}
		if file != nil {
			defer file.Close()
		}
	}

	user, err := h.ProfileService.ChangeAvatar(r.Context(), session.UserID, upload)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, user, http.StatusOK)
}

func (h *Handlers) CallHistory(w http.ResponseWriter, r *http.Request) {
	session, ok := requireSession(w, r)
	if !ok {
		return
	}

	records, err := h.ProfileService.CallHistory(r.Context(), session.UserID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, records, http.StatusOK)
}
