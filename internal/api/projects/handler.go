package projects

import (
	"net/http"

	"agency-site/internal/api/respond"
	"agency-site/internal/domain/projects"
	"agency-site/internal/store"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	store store.ProjectStore
}

func New(st store.ProjectStore) *Handler {
	return &Handler{store: st}
}

// ProjectDTO is a project as the site renders it, reviews included.
type ProjectDTO struct {
	projects.Project
	Reviews []projects.Review `json:"reviews"`
}

// ------------------------------
// GET /api/projects
// ------------------------------
func (h *Handler) List(c *gin.Context) {
	list, err := h.store.ListProjects(c.Request.Context())
	if err != nil {
		respond.Error(c, err, "Failed to fetch projects")
		return
	}
	h.writeWithReviews(c, list)
}

// ------------------------------
// GET /api/projects/:category
// ------------------------------
func (h *Handler) ListByCategory(c *gin.Context) {
	list, err := h.store.ListProjectsByCategory(c.Request.Context(), c.Param("category"))
	if err != nil {
		respond.Error(c, err, "Failed to fetch projects")
		return
	}
	h.writeWithReviews(c, list)
}

func (h *Handler) writeWithReviews(c *gin.Context, list []projects.Project) {
	out := make([]ProjectDTO, 0, len(list))
	for _, p := range list {
		reviews, err := h.store.GetProjectReviews(c.Request.Context(), p.ID)
		if err != nil {
			respond.Error(c, err, "Failed to fetch projects")
			return
		}
		out = append(out, ProjectDTO{Project: p, Reviews: reviews})
	}
	c.JSON(http.StatusOK, out)
}

// ------------------------------
// POST /api/projects
// ------------------------------
func (h *Handler) Create(c *gin.Context) {
	var in projects.ProjectInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.MalformedJSON(c)
		return
	}
	if err := in.Validate(); err != nil {
		respond.Error(c, err, "Failed to create project")
		return
	}

	p, err := h.store.CreateProject(c.Request.Context(), in)
	if err != nil {
		respond.Error(c, err, "Failed to create project")
		return
	}
	c.JSON(http.StatusCreated, p)
}

// ------------------------------
// PATCH /api/projects/:id
// ------------------------------
// The body is a complete project; fields left out are cleared.
func (h *Handler) Update(c *gin.Context) {
	id, ok := respond.ID(c, "id")
	if !ok {
		return
	}

	var in projects.ProjectInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.MalformedJSON(c)
		return
	}
	if err := in.Validate(); err != nil {
		respond.Error(c, err, "Failed to update project")
		return
	}

	p, err := h.store.UpdateProject(c.Request.Context(), id, in)
	if err != nil {
		respond.Error(c, err, "Failed to update project")
		return
	}
	c.JSON(http.StatusOK, p)
}

// ------------------------------
// DELETE /api/projects/:id
// ------------------------------
func (h *Handler) Delete(c *gin.Context) {
	id, ok := respond.ID(c, "id")
	if !ok {
		return
	}
	if err := h.store.DeleteProject(c.Request.Context(), id); err != nil {
		respond.Error(c, err, "Failed to delete project")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ------------------------------
// POST /api/projects/:projectId/reviews
// ------------------------------
// The path id always wins over a projectId in the body.
func (h *Handler) CreateReview(c *gin.Context) {
	projectID, ok := respond.ID(c, "projectId")
	if !ok {
		return
	}

	var in projects.ReviewInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.MalformedJSON(c)
		return
	}
	in.ProjectID = projectID
	if err := in.Validate(); err != nil {
		respond.Error(c, err, "Failed to create review")
		return
	}

	r, err := h.store.CreateProjectReview(c.Request.Context(), in)
	if err != nil {
		respond.Error(c, err, "Failed to create review")
		return
	}
	c.JSON(http.StatusCreated, r)
}
