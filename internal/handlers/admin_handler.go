package handlers

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"path/filepath"
	"strings"

	"emptycup/internal/models"
	"emptycup/internal/repositories"
	"emptycup/internal/services"
	"emptycup/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

// maxUploadErrors caps how many import errors are echoed back to the admin.
const maxUploadErrors = 5

var designerFormFields = []string{
	"name", "rating", "description", "projects", "experience",
	"price_range", "phone1", "phone2", "location", "specialties", "portfolio",
}

// AdminHandler serves the server-rendered admin interface.
type AdminHandler struct {
	service   *services.DesignerService
	flash     flasher
	templates map[string]*template.Template
	logger    *zap.Logger
}

// NewAdminHandler creates a new AdminHandler. Flash messages are kept in
// sessions from store.
func NewAdminHandler(service *services.DesignerService, store *session.Store, logger *zap.Logger) *AdminHandler {
	funcs := template.FuncMap{"join": strings.Join}
	pages := []string{"dashboard.html", "add_designer.html", "upload_json.html", "designers_list.html"}

	templates := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		templates[page] = template.Must(template.New(page).Funcs(funcs).
			ParseFS(templateFS, "templates/base.html", "templates/"+page))
	}

	return &AdminHandler{
		service:   service,
		flash:     flasher{store: store},
		templates: templates,
		logger:    logger,
	}
}

// RegisterRoutes registers the admin pages on the root router.
func (h *AdminHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/", h.HandleDashboard)
	router.Get("/add-designer", h.HandleAddDesignerForm)
	router.Post("/add-designer", h.HandleAddDesigner)
	router.Get("/upload-json", h.HandleUploadForm)
	router.Post("/upload-json", h.HandleUpload)
	router.Get("/designers-list", h.HandleDesignersList)
	router.Post("/delete-designer/:id", h.HandleDeleteDesigner)
}

// HandleDashboard shows the designer count and the latest additions.
func (h *AdminHandler) HandleDashboard(c *fiber.Ctx) error {
	data := fiber.Map{"Title": "Dashboard", "DesignerCount": int64(0), "Recent": []models.Designer{}}

	dashboard, err := h.service.Dashboard(c.UserContext())
	if err != nil {
		h.logger.Error("Failed to load dashboard", zap.Error(err))
	} else {
		data["DesignerCount"] = dashboard.DesignerCount
		data["Recent"] = dashboard.Recent
	}
	return h.render(c, "dashboard.html", data)
}

// HandleAddDesignerForm shows an empty designer form.
func (h *AdminHandler) HandleAddDesignerForm(c *fiber.Ctx) error {
	return h.renderDesignerForm(c, map[string]string{})
}

// HandleAddDesigner stores a designer submitted through the form.
func (h *AdminHandler) HandleAddDesigner(c *fiber.Ctx) error {
	form := make(map[string]string, len(designerFormFields))
	for _, field := range designerFormFields {
		form[field] = c.FormValue(field)
	}

	record, err := designerRecordFromForm(form)
	if err != nil {
		return h.renderDesignerForm(c, form, flashMessage{flashError, fmt.Sprintf("Error adding designer: %v", err)})
	}

	designer, err := h.service.CreateDesigner(c.UserContext(), record)
	if err != nil {
		var verr *services.ValidationError
		if errors.As(err, &verr) {
			return h.renderDesignerForm(c, form, flashMessage{flashError, fmt.Sprintf("Validation errors: %s", verr.Error())})
		}
		h.logger.Error("Failed to add designer from form", zap.Error(err))
		return h.renderDesignerForm(c, form, flashMessage{flashError, "Error adding designer: the designer could not be saved"})
	}

	h.addFlash(c, flashSuccess, fmt.Sprintf("Designer %q added successfully with ID: %d", designer.Name, designer.ID))
	return c.Redirect("/", fiber.StatusFound)
}

// HandleUploadForm shows the bulk upload form.
func (h *AdminHandler) HandleUploadForm(c *fiber.Ctx) error {
	return h.render(c, "upload_json.html", fiber.Map{"Title": "Upload JSON"})
}

// HandleUpload imports every designer found in an uploaded JSON array.
func (h *AdminHandler) HandleUpload(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil || file.Filename == "" {
		h.addFlash(c, flashError, "No file selected")
		return c.Redirect("/upload-json", fiber.StatusFound)
	}
	if !strings.EqualFold(filepath.Ext(file.Filename), ".json") {
		h.addFlash(c, flashError, "Invalid file type. Please upload a JSON file.")
		return c.Redirect("/upload-json", fiber.StatusFound)
	}

	f, err := file.Open()
	if err != nil {
		h.logger.Error("Failed to open uploaded file", zap.Error(err))
		h.addFlash(c, flashError, "Error processing file")
		return c.Redirect("/upload-json", fiber.StatusFound)
	}
	defer f.Close()

	raw, err := io.ReadAll(f)
	if err != nil {
		h.logger.Error("Failed to read uploaded file", zap.Error(err))
		h.addFlash(c, flashError, "Error processing file")
		return c.Redirect("/upload-json", fiber.StatusFound)
	}

	var payload interface{}
	if err := json.Unmarshal(raw, &payload); err != nil {
		h.addFlash(c, flashError, "Invalid JSON file format")
		return c.Redirect("/upload-json", fiber.StatusFound)
	}
	entries, ok := payload.([]interface{})
	if !ok {
		h.addFlash(c, flashError, "JSON file must contain an array of designers")
		return c.Redirect("/upload-json", fiber.StatusFound)
	}

	result := h.service.ImportDesigners(c.UserContext(), entries)
	if result.Added > 0 {
		h.addFlash(c, flashSuccess, fmt.Sprintf("Successfully added %d designers", result.Added))
	}
	if result.Failed > 0 {
		h.addFlash(c, flashError, fmt.Sprintf("Failed to add %d designers. Errors: %s",
			result.Failed, strings.Join(result.SampleErrors(maxUploadErrors), "; ")))
	}
	return c.Redirect("/", fiber.StatusFound)
}

// HandleDesignersList shows every designer, newest first.
func (h *AdminHandler) HandleDesignersList(c *fiber.Ctx) error {
	designers, err := h.service.GetDesignersByNewest(c.UserContext())
	if err != nil {
		h.logger.Error("Failed to list designers", zap.Error(err))
		h.addFlash(c, flashError, "Error fetching designers")
		designers = []models.Designer{}
	}
	return h.render(c, "designers_list.html", fiber.Map{"Title": "All designers", "Designers": designers})
}

// HandleDeleteDesigner removes a designer from the list page.
func (h *AdminHandler) HandleDeleteDesigner(c *fiber.Ctx) error {
	id, ok := designerID(c)
	if !ok {
		h.addFlash(c, flashError, "Designer not found")
		return c.Redirect("/designers-list", fiber.StatusFound)
	}

	ctx := c.UserContext()
	designer, err := h.service.GetDesignerByID(ctx, id)
	if err == nil {
		err = h.service.DeleteDesigner(ctx, id)
	}
	switch {
	case err == nil:
		h.addFlash(c, flashSuccess, fmt.Sprintf("Designer %q deleted successfully", designer.Name))
	case errors.Is(err, repositories.ErrNotFound):
		h.addFlash(c, flashError, "Designer not found")
	default:
		h.logger.Error("Failed to delete designer", zap.Uint("designer_id", id), zap.Error(err))
		h.addFlash(c, flashError, "Error deleting designer")
	}
	return c.Redirect("/designers-list", fiber.StatusFound)
}

func (h *AdminHandler) renderDesignerForm(c *fiber.Ctx, form map[string]string, flashes ...flashMessage) error {
	return h.render(c, "add_designer.html", fiber.Map{
		"Title":       "Add designer",
		"Form":        form,
		"PriceRanges": []string{models.PriceBudget, models.PriceStandard, models.PricePremium},
	}, flashes...)
}

func (h *AdminHandler) addFlash(c *fiber.Ctx, category, message string) {
	if err := h.flash.add(c, category, message); err != nil {
		h.logger.Warn("Failed to store flash message", zap.Error(err))
	}
}

// render executes page inside the base layout. Pending session flashes are
// shown before the extra ones raised while handling this request.
func (h *AdminHandler) render(c *fiber.Ctx, page string, data fiber.Map, extra ...flashMessage) error {
	data["Flashes"] = append(h.flash.pop(c), extra...)

	var buf bytes.Buffer
	if err := h.templates[page].ExecuteTemplate(&buf, "base", data); err != nil {
		h.logger.Error("Failed to render page", zap.String("page", page), zap.Error(err))
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to render page")
	}
	c.Type("html", "utf-8")
	return c.Send(buf.Bytes())
}

// designerRecordFromForm converts submitted form values into a designer
// record. Numeric fields must parse; list fields are comma separated.
func designerRecordFromForm(form map[string]string) (map[string]interface{}, error) {
	rating, err := validation.ToFloat(form["rating"])
	if err != nil {
		return nil, fmt.Errorf("rating %q is not a number", form["rating"])
	}
	projects, err := validation.ToInt(form["projects"])
	if err != nil {
		return nil, fmt.Errorf("projects %q is not a whole number", form["projects"])
	}
	experience, err := validation.ToInt(form["experience"])
	if err != nil {
		return nil, fmt.Errorf("experience %q is not a whole number", form["experience"])
	}

	return map[string]interface{}{
		"name":        form["name"],
		"rating":      rating,
		"description": form["description"],
		"projects":    projects,
		"experience":  experience,
		"price_range": form["price_range"],
		"phone1":      form["phone1"],
		"phone2":      form["phone2"],
		"location":    form["location"],
		"specialties": splitList(form["specialties"]),
		"portfolio":   splitList(form["portfolio"]),
	}, nil
}

func splitList(raw string) []string {
	items := []string{}
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			items = append(items, part)
		}
	}
	return items
}
