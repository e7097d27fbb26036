package job

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/hiredeck/hiredeck/internal/server"

	humanize "github.com/dustin/go-humanize"
	"github.com/gorilla/mux"
)

func JobsPageHandler(svr server.Server, repo *Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		search := r.URL.Query().Get("search")
		page, err := strconv.Atoi(r.URL.Query().Get("p"))
		if err != nil || page < 1 {
			page = 1
		}
		jobs, meta, err := repo.JobsByQuery(search, page, svr.GetConfig().JobsPerPage)
		if err != nil {
			svr.Log(err, "unable to load jobs from upstream")
			svr.Render(w, r, http.StatusBadGateway, "jobs.html", map[string]interface{}{
				"LoadError": true,
			})
			return
		}
		for i, j := range jobs {
			jobs[i].TimeAgo = humanize.Time(j.PostedAt)
		}
		pages := []int{}
		for i := 1; i <= meta.LastPage && i <= 8; i++ {
			pages = append(pages, i)
		}
		svr.Render(w, r, http.StatusOK, "jobs.html", map[string]interface{}{
			"Jobs":         jobs,
			"SearchFilter": search,
			"CurrentPage":  meta.CurrentPage,
			"LastPage":     meta.LastPage,
			"PageIndexes":  pages,
			"TotalCount":   meta.Total,
		})
	}
}

func JobPageHandler(svr server.Server, repo *Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		slug := vars["slug"]
		j, err := repo.JobBySlug(slug)
		if err != nil {
			svr.Log(err, fmt.Sprintf("unable to get job %s", slug))
			svr.JSON(w, http.StatusNotFound, "job not found")
			return
		}
		j.TimeAgo = humanize.Time(j.PostedAt)
		svr.Render(w, r, http.StatusOK, "job.html", map[string]interface{}{
			"Job":             j,
			"DescriptionHTML": svr.MarkdownToHTML(j.Description),
		})
	}
}
