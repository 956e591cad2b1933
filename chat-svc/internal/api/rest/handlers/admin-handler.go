package handlers

import (
	"github.com/SundayYogurt/CoffeeChat-Backend/chat-svc/internal/dto"
	"github.com/SundayYogurt/CoffeeChat-Backend/chat-svc/internal/helper/utils"
	"github.com/SundayYogurt/CoffeeChat-Backend/chat-svc/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	admin   services.AdminService
	matches services.MatchService
}

func NewAdminHandler(admin services.AdminService, matches services.MatchService) *AdminHandler {
	return &AdminHandler{admin: admin, matches: matches}
}

func (h *AdminHandler) SetupRoutes(api fiber.Router, g Guards) {
	admin := api.Group("/admin", g.Auth, g.Admin)

	admin.Get("/stats", h.Stats)
	admin.Get("/audit-log", h.AuditLog)

	// Members
	admin.Get("/members", h.ListMembers)
	admin.Get("/members/pending", h.ListPendingMembers)
	admin.Post("/members", withUser(h.CreateMember))
	admin.Post("/members/:id/approve", withUser(h.ApproveMember))
	admin.Post("/members/:id/reject", withUser(h.RejectMember))

	admin.Get("/applicants", h.ListApplicants)

	// Matches
	admin.Get("/matches", h.ListMatches)
	admin.Post("/matches/bulk", withUser(h.BulkMatches))
	admin.Post("/matches/:id/confirm", withUser(h.matchAction(h.matches.Confirm)))
	admin.Post("/matches/:id/reject", withUser(h.matchAction(h.matches.Reject)))
	admin.Post("/matches/:id/complete", withUser(h.matchAction(h.matches.Complete)))

	// Whitelist
	admin.Get("/whitelist", h.ListWhitelist)
	admin.Post("/whitelist", withUser(h.AddWhitelist))
	admin.Delete("/whitelist/:id", withUser(h.RemoveWhitelist))

	// Invite codes
	admin.Get("/invite-codes", h.ListInviteCodes)
	admin.Post("/invite-codes", withUser(h.CreateInviteCode))
	admin.Delete("/invite-codes/:id", withUser(h.DisableInviteCode))
}

func (h *AdminHandler) Stats(ctx *fiber.Ctx) error {
	st, err := h.admin.Stats()
	if err != nil {
		return respondError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, st)
}

func (h *AdminHandler) AuditLog(ctx *fiber.Ctx) error {
	limit, offset := pageParams(ctx)
	out, err := h.admin.AuditLog(limit, offset)
	if err != nil {
		return respondError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, out)
}

// MEMBERS
func (h *AdminHandler) ListMembers(ctx *fiber.Ctx) error {
	limit, offset := pageParams(ctx)
	out, err := h.admin.ListMembers(limit, offset)
	if err != nil {
		return respondError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, out)
}

func (h *AdminHandler) ListPendingMembers(ctx *fiber.Ctx) error {
	limit, offset := pageParams(ctx)
	out, err := h.admin.ListPendingMembers(limit, offset)
	if err != nil {
		return respondError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, out)
}

func (h *AdminHandler) CreateMember(ctx *fiber.Ctx, adminID uint) error {
	var req dto.AdminCreateMember
	if err := parseBody(ctx, &req); err != nil {
		return respondError(ctx, err)
	}
	p, err := h.admin.CreateMember(adminID, req)
	if err != nil {
		return respondError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, p)
}

func (h *AdminHandler) ApproveMember(ctx *fiber.Ctx, adminID uint) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return respondError(ctx, err)
	}
	p, err := h.admin.ApproveMember(adminID, id)
	if err != nil {
		return respondError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, p)
}

func (h *AdminHandler) RejectMember(ctx *fiber.Ctx, adminID uint) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return respondError(ctx, err)
	}
	var req dto.RejectMember
	if len(ctx.Body()) > 0 {
		if err := parseBody(ctx, &req); err != nil {
			return respondError(ctx, err)
		}
	}
	if err := h.admin.RejectMember(adminID, id, req); err != nil {
		return respondError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, fiber.Map{"status": "rejected"})
}

func (h *AdminHandler) ListApplicants(ctx *fiber.Ctx) error {
	limit, offset := pageParams(ctx)
	out, err := h.admin.ListApplicants(limit, offset)
	if err != nil {
		return respondError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, out)
}

// MATCHES
func (h *AdminHandler) ListMatches(ctx *fiber.Ctx) error {
	limit, offset := pageParams(ctx)
	out, err := h.matches.List(ctx.Query("status"), limit, offset)
	if err != nil {
		return respondError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, out)
}

type matchTransition func(adminID, matchID uint, input dto.MatchAction) (*dto.MatchResponse, error)

func (h *AdminHandler) matchAction(apply matchTransition) func(*fiber.Ctx, uint) error {
	return func(ctx *fiber.Ctx, adminID uint) error {
		id, err := paramID(ctx, "id")
		if err != nil {
			return respondError(ctx, err)
		}
		var req dto.MatchAction
		if len(ctx.Body()) > 0 {
			if err := parseBody(ctx, &req); err != nil {
				return respondError(ctx, err)
			}
		}

		out, err := apply(adminID, id, req)
		if err != nil {
			return respondError(ctx, err)
		}
		return utils.ResponseSuccess(ctx, fiber.StatusOK, out)
	}
}

func (h *AdminHandler) BulkMatches(ctx *fiber.Ctx, adminID uint) error {
	var req dto.BulkMatchAction
	if err := parseBody(ctx, &req); err != nil {
		return respondError(ctx, err)
	}
	out, err := h.matches.Bulk(adminID, req)
	if err != nil {
		return respondError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, out)
}

// WHITELIST
func (h *AdminHandler) ListWhitelist(ctx *fiber.Ctx) error {
	out, err := h.admin.ListWhitelist()
	if err != nil {
		return respondError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, out)
}

func (h *AdminHandler) AddWhitelist(ctx *fiber.Ctx, adminID uint) error {
	var req dto.WhitelistAdd
	if err := parseBody(ctx, &req); err != nil {
		return respondError(ctx, err)
	}
	out, err := h.admin.AddWhitelist(adminID, req)
	if err != nil {
		return respondError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, out)
}

func (h *AdminHandler) RemoveWhitelist(ctx *fiber.Ctx, adminID uint) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return respondError(ctx, err)
	}
	if err := h.admin.RemoveWhitelist(adminID, id); err != nil {
		return respondError(ctx, err)
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}

// INVITE CODES
func (h *AdminHandler) ListInviteCodes(ctx *fiber.Ctx) error {
	out, err := h.admin.ListInviteCodes()
	if err != nil {
		return respondError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, out)
}

func (h *AdminHandler) CreateInviteCode(ctx *fiber.Ctx, adminID uint) error {
	var req dto.InviteCodeCreate
	if len(ctx.Body()) > 0 {
		if err := parseBody(ctx, &req); err != nil {
			return respondError(ctx, err)
		}
	}
	out, err := h.admin.CreateInviteCode(adminID, req)
	if err != nil {
		return respondError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, out)
}

func (h *AdminHandler) DisableInviteCode(ctx *fiber.Ctx, adminID uint) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return respondError(ctx, err)
	}
	if err := h.admin.DisableInviteCode(adminID, id); err != nil {
		return respondError(ctx, err)
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}
