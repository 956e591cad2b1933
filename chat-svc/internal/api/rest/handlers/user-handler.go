package handlers

import (
	"github.com/SundayYogurt/CoffeeChat-Backend/chat-svc/internal/dto"
	"github.com/SundayYogurt/CoffeeChat-Backend/chat-svc/internal/helper/utils"
	"github.com/SundayYogurt/CoffeeChat-Backend/chat-svc/internal/services"
	pkgutils "github.com/SundayYogurt/CoffeeChat-Backend/chat-svc/pkg/utils"
	"github.com/gofiber/fiber/v2"
)

const maxPhotoSize = 5 * 1024 * 1024 // 5MB

type UserHandler struct {
	svc services.UserService
}

func NewUserHandler(svc services.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

func (h *UserHandler) SetupRoutes(api fiber.Router, g Guards) {
	// Account
	api.Get("/me", g.Auth, withUser(h.GetMe))
	api.Patch("/me", g.Auth, withUser(h.SelectRole))
	api.Put("/me", g.Auth, withUser(h.UpdateMe))
	api.Post("/upload-photo", g.Auth, withUser(h.UploadPhoto))
	api.Post("/reset-profile", g.Auth, withUser(h.ResetProfile))

	// Applicant profile
	api.Post("/applicants", g.Auth, withUser(h.CreateApplicantProfile))
	api.Get("/applicants/me", g.Auth, withUser(h.GetApplicantProfile))
	api.Patch("/applicants/me", g.Auth, withUser(h.UpdateApplicantProfile))

	// Member profile
	api.Post("/bc-members", g.Auth, withUser(h.CreateMemberProfile))
	api.Post("/bc-members/join", g.Auth, withUser(h.JoinWithInvite))
	api.Get("/bc-members/me", g.Auth, withUser(h.GetMemberProfile))
	api.Patch("/bc-members/me", g.Auth, withUser(h.UpdateMemberProfile))

	api.Get("/invite-codes/:code", g.Auth, h.CheckInviteCode)
	api.Get("/whitelist/check", g.Auth, withUser(h.WhitelistStatus))
}

func (h *UserHandler) GetMe(ctx *fiber.Ctx, userID uint) error {
	me, err := h.svc.GetMe(userID)
	if err != nil {
		return respondError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, me)
}

func (h *UserHandler) SelectRole(ctx *fiber.Ctx, userID uint) error {
	var req dto.SelectRole
	if err := parseBody(ctx, &req); err != nil {
		return respondError(ctx, err)
	}
	me, err := h.svc.SelectRole(userID, req)
	if err != nil {
		return respondError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, me)
}

func (h *UserHandler) UpdateMe(ctx *fiber.Ctx, userID uint) error {
	var req dto.UpdateUser
	if err := parseBody(ctx, &req); err != nil {
		return respondError(ctx, err)
	}
	me, err := h.svc.UpdateMe(userID, req)
	if err != nil {
		return respondError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, me)
}

// POST /api/upload-photo
// form-data: photo=<image>
func (h *UserHandler) UploadPhoto(ctx *fiber.Ctx, userID uint) error {
	file, err := ctx.FormFile("photo")
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "photo is required")
	}
	if file.Size > maxPhotoSize {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "file too large (max 5MB)")
	}

	f, err := file.Open()
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, "cannot open uploaded file")
	}
	defer f.Close()

	raw, err := pkgutils.ReadAllLimit(f, maxPhotoSize)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, err.Error())
	}

	out, err := h.svc.UploadPhoto(ctx.UserContext(), userID, raw)
	if err != nil {
		return respondError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, out)
}

func (h *UserHandler) ResetProfile(ctx *fiber.Ctx, userID uint) error {
	if err := h.svc.ResetProfile(userID); err != nil {
		return respondError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, fiber.Map{"status": "Profile reset successfully"})
}

func (h *UserHandler) CreateApplicantProfile(ctx *fiber.Ctx, userID uint) error {
	var req dto.CreateApplicantProfile
	if err := parseBody(ctx, &req); err != nil {
		return respondError(ctx, err)
	}
	p, err := h.svc.CreateApplicantProfile(userID, req)
	if err != nil {
		return respondError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, p)
}

func (h *UserHandler) GetApplicantProfile(ctx *fiber.Ctx, userID uint) error {
	p, err := h.svc.GetApplicantProfile(userID)
	if err != nil {
		return respondError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, p)
}

func (h *UserHandler) UpdateApplicantProfile(ctx *fiber.Ctx, userID uint) error {
	var req dto.UpdateApplicantProfile
	if err := parseBody(ctx, &req); err != nil {
		return respondError(ctx, err)
	}
	p, err := h.svc.UpdateApplicantProfile(userID, req)
	if err != nil {
		return respondError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, p)
}

func (h *UserHandler) CreateMemberProfile(ctx *fiber.Ctx, userID uint) error {
	var req dto.CreateMemberProfile
	if err := parseBody(ctx, &req); err != nil {
		return respondError(ctx, err)
	}
	p, err := h.svc.CreateMemberProfile(userID, req)
	if err != nil {
		return respondError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, p)
}

func (h *UserHandler) JoinWithInvite(ctx *fiber.Ctx, userID uint) error {
	var req dto.JoinWithInvite
	if err := parseBody(ctx, &req); err != nil {
		return respondError(ctx, err)
	}
	p, err := h.svc.JoinWithInvite(userID, req)
	if err != nil {
		return respondError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, p)
}

func (h *UserHandler) GetMemberProfile(ctx *fiber.Ctx, userID uint) error {
	p, err := h.svc.GetMemberProfile(userID)
	if err != nil {
		return respondError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, p)
}

func (h *UserHandler) UpdateMemberProfile(ctx *fiber.Ctx, userID uint) error {
	var req dto.UpdateMemberProfile
	if err := parseBody(ctx, &req); err != nil {
		return respondError(ctx, err)
	}
	p, err := h.svc.UpdateMemberProfile(userID, req)
	if err != nil {
		return respondError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, p)
}

func (h *UserHandler) CheckInviteCode(ctx *fiber.Ctx) error {
	st, err := h.svc.CheckInviteCode(ctx.Params("code"))
	if err != nil {
		return respondError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, st)
}

func (h *UserHandler) WhitelistStatus(ctx *fiber.Ctx, userID uint) error {
	st, err := h.svc.WhitelistStatus(userID)
	if err != nil {
		return respondError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, st)
}
