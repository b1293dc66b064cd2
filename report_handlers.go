package main

import (
	"errors"
	"net/http"

	"reportdesk/models"
	"reportdesk/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const noPermissionMessage = "You do not have permission to perform this action."

func reportIndexHandler(c *gin.Context) {
	page := queryInt(c, "page", 1)
	filters := service.Filters{}
	if id := queryInt(c, "filters_category_id", 0); id > 0 {
		filters.CategoryID = uint(id)
	}
	pagination, err := reportService.GetPaginatedList(page, filters)
	if err != nil {
		c.String(http.StatusInternalServerError, "query failed")
		return
	}
	render(c, http.StatusOK, "report_index.html", gin.H{
		"pagination":       pagination,
		"filterCategoryID": filters.CategoryID,
		"previousPage":     pagination.Page - 1,
		"nextPage":         pagination.Page + 1,
	})
}

func reportShowHandler(c *gin.Context) {
	report, ok := resolveReport(c)
	if !ok {
		return
	}
	render(c, http.StatusOK, "report_show.html", gin.H{"report": report})
}

func reportCreateHandler(c *gin.Context) {
	user := currentUser(c)
	// Manual gate, checked before the form is ever shown: a denial is a
	// redirect with a notice, even on GET.
	if user == nil || !user.IsAdminRole() {
		addFlash(c, "danger", noPermissionMessage)
		redirect(c, "/reports")
		return
	}

	if c.Request.Method == http.MethodPost {
		form, category, errs := bindReportForm(c)
		if len(errs) > 0 {
			renderReportForm(c, "report_create.html", nil, form, errs)
			return
		}
		report := &models.Report{
			Title:       form.Title,
			Description: form.Description,
			Type:        models.ReportType(form.Type),
			Resolved:    form.Resolved,
			CategoryID:  category.ID,
			AuthorID:    user.ID,
		}
		if err := reportService.Save(report); err != nil {
			c.String(http.StatusInternalServerError, "save failed")
			return
		}
		addFlash(c, "success", "Created successfully.")
		redirect(c, "/reports")
		return
	}

	renderReportForm(c, "report_create.html", nil, reportForm{}, nil)
}

func reportEditHandler(c *gin.Context) {
	report, ok := resolveReport(c)
	if !ok {
		return
	}
	user := currentUser(c)
	if user == nil || !user.IsAdminRole() {
		addFlash(c, "danger", noPermissionMessage)
		redirect(c, "/reports")
		return
	}

	if c.Request.Method == http.MethodPut {
		form, category, errs := bindReportForm(c)
		if len(errs) > 0 {
			renderReportForm(c, "report_edit.html", report, form, errs)
			return
		}
		// Author is never touched by the form; category only changes to
		// what was submitted.
		report.Title = form.Title
		report.Description = form.Description
		report.Type = models.ReportType(form.Type)
		report.Resolved = form.Resolved
		report.CategoryID = category.ID
		report.Category = *category
		if err := reportService.Save(report); err != nil {
			c.String(http.StatusInternalServerError, "save failed")
			return
		}
		addFlash(c, "success", "Updated successfully.")
		redirect(c, "/reports")
		return
	}

	form := reportForm{
		Title:       report.Title,
		Description: report.Description,
		Type:        string(report.Type),
		Resolved:    report.Resolved,
		Category:    report.CategoryID,
	}
	renderReportForm(c, "report_edit.html", report, form, nil)
}

func reportDeleteHandler(c *gin.Context) {
	report, ok := resolveReport(c)
	if !ok {
		return
	}
	if c.Request.Method == http.MethodDelete {
		if err := reportService.Delete(report); err != nil {
			c.String(http.StatusInternalServerError, "delete failed")
			return
		}
		addFlash(c, "success", "Deleted successfully.")
		redirect(c, "/reports")
		return
	}
	render(c, http.StatusOK, "report_delete.html", gin.H{"report": report})
}

// resolveReport loads the report named by the :id segment, answering 404
// for malformed ids and missing rows.
func resolveReport(c *gin.Context) (*models.Report, bool) {
	id, ok := pathID(c)
	if !ok {
		notFound(c)
		return nil, false
	}
	report, err := reportService.FindOneByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			notFound(c)
		} else {
			c.String(http.StatusInternalServerError, "query failed")
		}
		return nil, false
	}
	return report, true
}

// bindReportForm binds and validates the submitted report form, also
// resolving the category reference and checking the type enum.
func bindReportForm(c *gin.Context) (reportForm, *models.Category, map[string]string) {
	var form reportForm
	if err := c.ShouldBind(&form); err != nil {
		return form, nil, formErrors(err)
	}
	errs := map[string]string{}
	if !models.ReportType(form.Type).IsValid() {
		errs["Type"] = "This value is not valid."
	}
	category, err := categoryService.FindOneByID(form.Category)
	if err != nil {
		errs["Category"] = "This value is not valid."
	}
	if len(errs) > 0 {
		return form, nil, errs
	}
	return form, category, nil
}

func renderReportForm(c *gin.Context, name string, report *models.Report, form reportForm, errs map[string]string) {
	categories, err := categoryService.FindAll()
	if err != nil {
		c.String(http.StatusInternalServerError, "query failed")
		return
	}
	render(c, http.StatusOK, name, gin.H{
		"report":     report,
		"form":       form,
		"errors":     errs,
		"categories": categories,
		"types":      models.ReportTypes(),
	})
}
