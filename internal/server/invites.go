package server

import (
	"net/http"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	auditdomain "github.com/crestline/irportal/internal/audit/domain"
	authdomain "github.com/crestline/irportal/internal/auth/domain"
	invitationdomain "github.com/crestline/irportal/internal/invitation/domain"
)

type createInviteRequest struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

type createInvitesRequest struct {
	Invites []createInviteRequest `json:"invites"`
}

// CreateInvites accepts a single invite or a batch under "invites".
func (s *Server) CreateInvites(c *gin.Context) {
	admin, ok := s.currentUser(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var req createInvitesRequest
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	if len(req.Invites) == 0 {
		// Fall back to the single-invite shape.
		var single createInviteRequest
		if err := c.ShouldBindBodyWith(&single, binding.JSON); err != nil || strings.TrimSpace(single.Email) == "" {
			AbortWithError(c, newValidationError("invites", "required", "at least one invite is required"))
			return
		}
		req.Invites = []createInviteRequest{single}
	}

	reqs := make([]invitationdomain.CreateRequest, 0, len(req.Invites))
	for _, invite := range req.Invites {
		role := authdomain.Role(strings.TrimSpace(invite.Role))
		if role == "" {
			role = authdomain.RoleInvestor
		}
		reqs = append(reqs, invitationdomain.CreateRequest{
			Email:     invite.Email,
			Role:      role,
			InvitedBy: admin.ID,
		})
	}

	invites, err := s.inviteSvc.BatchCreate(c.Request.Context(), reqs)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	adminID := admin.ID.String()
	for _, inv := range invites {
		targetID := inv.ID.String()
		s.audit(c, auditdomain.Entry{
			ActorID:    &adminID,
			Action:     auditdomain.ActionInviteCreate,
			TargetType: "invite",
			TargetID:   &targetID,
		})
	}

	c.JSON(http.StatusCreated, gin.H{"invites": invites})
}

func (s *Server) ListInvites(c *gin.Context) {
	invites, err := s.inviteSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"invites": invites})
}

func (s *Server) RevokeInvite(c *gin.Context) {
	admin, ok := s.currentUser(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	id, err := snowflake.ParseString(strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	if err := s.inviteSvc.Revoke(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	adminID := admin.ID.String()
	targetID := id.String()
	s.audit(c, auditdomain.Entry{
		ActorID:    &adminID,
		Action:     auditdomain.ActionInviteRevoke,
		TargetType: "invite",
		TargetID:   &targetID,
	})

	c.Status(http.StatusNoContent)
}
