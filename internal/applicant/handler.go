package applicant

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"regexp"
	"strconv"
	"time"

	"github.com/hiredeck/hiredeck/internal/interview"
	"github.com/hiredeck/hiredeck/internal/server"

	"github.com/aclements/go-moremath/stats"
	humanize "github.com/dustin/go-humanize"
	"github.com/gorilla/feeds"
	"github.com/gorilla/mux"
	"github.com/microcosm-cc/bluemonday"
)

type historyGetter interface {
	ApplicationByID(id int) (Application, error)
	StatusHistory(id int) ([]StatusHistoryEntry, error)
}

// Row is one application prepared for the dashboard table: the record plus
// the transition actions its current status exposes.
type Row struct {
	Application
	Actions  []Transition
	Selected bool
}

func DashboardPageHandler(svr server.Server, ctrl *Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := r.URL.Query().Get("status")
		search := r.URL.Query().Get("search")
		if status != "" && !IsValidStatus(status) {
			svr.Redirect(w, r, http.StatusFound, "/manage/applications")
			return
		}
		pageID, err := strconv.Atoi(r.URL.Query().Get("p"))
		if err != nil || pageID < 1 {
			pageID = 1
		}
		loadErr := ctrl.Load(Filters{
			Status:  status,
			Search:  search,
			Page:    pageID,
			PerPage: svr.GetConfig().ApplicationsPerPage,
		})
		if loadErr != nil {
			svr.Log(loadErr, "unable to load applications from upstream")
		}
		applications := ctrl.ApplyLocalSearch(search)
		selected := make(map[int]bool)
		for _, id := range ctrl.Selection() {
			selected[id] = true
		}
		rows := make([]Row, 0, len(applications))
		for i, a := range applications {
			applications[i].TimeAgo = humanize.Time(a.AppliedAt)
			rows = append(rows, Row{
				Application: applications[i],
				Actions:     NextStatuses(a.Status),
				Selected:    selected[a.ID],
			})
		}
		meta := ctrl.Meta()
		pages := []int{}
		for i := 1; i <= meta.LastPage && i <= 8; i++ {
			pages = append(pages, i)
		}
		svr.Render(w, r, http.StatusOK, "applications.html", map[string]interface{}{
			"Applications":    rows,
			"Counts":          ctrl.CountsByStatus(),
			"Statuses":        Statuses(),
			"StatusFilter":    status,
			"SearchFilter":    search,
			"CurrentPage":     meta.CurrentPage,
			"LastPage":        meta.LastPage,
			"PageIndexes":     pages,
			"TotalCount":      meta.Total,
			"SelectedCount":   len(selected),
			"LoadError":       loadErr != nil,
			"SalaryStats":     expectedSalaryStats(applications),
			"HasApplications": len(rows) > 0,
		})
	}
}

func ApplicationDetailPageHandler(svr server.Server, repo historyGetter, interviewRepo *interview.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		id, err := strconv.Atoi(vars["id"])
		if err != nil {
			svr.JSON(w, http.StatusBadRequest, "invalid application id")
			return
		}
		app, err := repo.ApplicationByID(id)
		if err != nil {
			svr.Log(err, fmt.Sprintf("unable to get application %d", id))
			svr.JSON(w, http.StatusNotFound, "application not found")
			return
		}
		history, err := repo.StatusHistory(id)
		if err != nil {
			// history is additive detail, the page still renders without it
			svr.Log(err, fmt.Sprintf("unable to get status history for application %d", id))
		}
		SortHistoryNewestFirst(history)
		var currentNotes string
		if latest, ok := LatestHistoryEntry(history); ok {
			currentNotes = latest.Notes
		}
		interviews, err := interviewRepo.ListByApplication(id)
		if err != nil {
			svr.Log(err, fmt.Sprintf("unable to list interviews for application %d", id))
		}
		app.TimeAgo = humanize.Time(app.AppliedAt)
		svr.Render(w, r, http.StatusOK, "application-detail.html", map[string]interface{}{
			"Application":          app,
			"Actions":              NextStatuses(app.Status),
			"History":              history,
			"CurrentStatusNotes":   currentNotes,
			"Interviews":           interviews,
			"HasUpcomingInterview": interview.HasUpcoming(interviews, time.Now().UTC()),
			"InterviewTypes":       interview.Types(),
			"CoverLetterHTML":      svr.MarkdownToHTML(app.CoverLetter),
			"MotivationHTML":       svr.MarkdownToHTML(app.MotivationLetter),
		})
	}
}

func UpdateApplicationStatusHandler(svr server.Server, ctrl *Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := &struct {
			ApplicationID int    `json:"application_id"`
			Status        string `json:"status"`
			Notes         string `json:"notes"`
		}{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			svr.JSON(w, http.StatusBadRequest, "request is invalid")
			return
		}
		if !IsValidStatus(req.Status) {
			svr.JSON(w, http.StatusBadRequest, "status is invalid")
			return
		}
		req.Notes = bluemonday.StrictPolicy().Sanitize(req.Notes)
		if err := ctrl.UpdateStatus(req.ApplicationID, req.Status, req.Notes); err != nil {
			svr.Log(err, fmt.Sprintf("unable to update status of application %d", req.ApplicationID))
			svr.JSON(w, http.StatusBadGateway, "could not update application status")
			return
		}
		svr.JSON(w, http.StatusOK, map[string]interface{}{
			"status": req.Status,
			"counts": ctrl.CountsByStatus(),
		})
	}
}

func SelectApplicationHandler(svr server.Server, ctrl *Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := &struct {
			ApplicationID int  `json:"application_id"`
			Selected      bool `json:"selected"`
		}{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			svr.JSON(w, http.StatusBadRequest, "request is invalid")
			return
		}
		if req.Selected {
			ctrl.Select(req.ApplicationID)
		} else {
			ctrl.Deselect(req.ApplicationID)
		}
		svr.JSON(w, http.StatusOK, map[string]int{"selected_count": len(ctrl.Selection())})
	}
}

// BulkUpdateStatusHandler applies one status to the posted selection. The
// request must carry an explicit confirmation; the reported count is the
// server's, which may be lower than the selection size.
func BulkUpdateStatusHandler(svr server.Server, ctrl *Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := &struct {
			ApplicationIDs []int  `json:"application_ids"`
			Status         string `json:"status"`
			Notes          string `json:"notes"`
			Confirm        bool   `json:"confirm"`
		}{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			svr.JSON(w, http.StatusBadRequest, "request is invalid")
			return
		}
		if !req.Confirm {
			svr.JSON(w, http.StatusBadRequest, "bulk status change requires confirmation")
			return
		}
		if len(req.ApplicationIDs) == 0 {
			svr.JSON(w, http.StatusBadRequest, "no applications selected")
			return
		}
		if !IsValidStatus(req.Status) {
			svr.JSON(w, http.StatusBadRequest, "status is invalid")
			return
		}
		req.Notes = bluemonday.StrictPolicy().Sanitize(req.Notes)
		count, err := ctrl.BulkUpdateStatus(req.ApplicationIDs, req.Status, req.Notes)
		if err != nil {
			svr.Log(err, "unable to bulk update application status")
			svr.JSON(w, http.StatusBadGateway, "could not update application statuses")
			return
		}
		svr.JSON(w, http.StatusOK, map[string]interface{}{
			"updated_count": count,
			"message":       fmt.Sprintf("%d applications updated", count),
			"counts":        ctrl.CountsByStatus(),
		})
	}
}

func RecentApplicationsFeedHandler(svr server.Server, repo *Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		applications, _, err := repo.ApplicationsByQuery(Filters{Page: 1, PerPage: 20})
		if err != nil {
			svr.Log(err, "unable to load applications for feed")
			svr.JSON(w, http.StatusBadGateway, "could not load applications")
			return
		}
		feed := &feeds.Feed{
			Title:       fmt.Sprintf("%s New Applications", svr.GetConfig().SiteName),
			Link:        &feeds.Link{Href: fmt.Sprintf("https://%s/manage/applications", svr.GetConfig().SiteHost)},
			Description: "Latest candidate applications",
			Created:     time.Now(),
		}
		for _, a := range applications {
			feed.Items = append(feed.Items, &feeds.Item{
				Title:       fmt.Sprintf("%s applied for %s", a.CandidateName, a.JobTitle),
				Link:        &feeds.Link{Href: fmt.Sprintf("https://%s/manage/applications/%d", svr.GetConfig().SiteHost, a.ID)},
				Description: fmt.Sprintf("%s at %s, status %s", a.JobTitle, a.CompanyName, a.Status),
				Created:     a.AppliedAt,
			})
		}
		rss, err := feed.ToRss()
		if err != nil {
			svr.Log(err, "unable to render applications feed")
			svr.JSON(w, http.StatusInternalServerError, nil)
			return
		}
		svr.XML(w, http.StatusOK, []byte(rss))
	}
}

var salaryDigitsRe = regexp.MustCompile(`[0-9]+`)

// SalaryStats summarises the expected salaries of the loaded page.
type SalaryStats struct {
	Count int
	P10   string
	P50   string
	P90   string
	Mean  string
}

func expectedSalaryStats(applications []Application) *SalaryStats {
	var sample stats.Sample
	for _, a := range applications {
		digits := salaryDigitsRe.FindAllString(a.ExpectedSalary, -1)
		if len(digits) == 0 {
			continue
		}
		v, err := strconv.ParseFloat(digits[0], 64)
		if err != nil {
			continue
		}
		sample.Xs = append(sample.Xs, v)
	}
	if len(sample.Xs) < 2 {
		return nil
	}
	return &SalaryStats{
		Count: len(sample.Xs),
		P10:   humanize.Comma(int64(math.Round(sample.Quantile(0.1)))),
		P50:   humanize.Comma(int64(math.Round(sample.Quantile(0.5)))),
		P90:   humanize.Comma(int64(math.Round(sample.Quantile(0.9)))),
		Mean:  humanize.Comma(int64(math.Round(sample.Mean()))),
	}
}
