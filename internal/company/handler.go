package company

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"net/http"
	"strconv"

	"github.com/hiredeck/hiredeck/internal/api"
	"github.com/hiredeck/hiredeck/internal/server"
)

type cachedPage struct {
	Companies []Company
	Meta      api.Meta
}

// CompaniesPageHandler renders the company directory. The directory changes
// rarely, pages without a search term are served from the in-memory cache.
func CompaniesPageHandler(svr server.Server, repo *Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		search := r.URL.Query().Get("search")
		page, err := strconv.Atoi(r.URL.Query().Get("p"))
		if err != nil || page < 1 {
			page = 1
		}
		var cp cachedPage
		cacheKey := fmt.Sprintf("companies-page-%d", page)
		cached := false
		if search == "" {
			if raw, ok := svr.CacheGet(cacheKey); ok {
				if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(&cp); err == nil {
					cached = true
				}
			}
		}
		if !cached {
			companies, meta, err := repo.CompaniesByQuery(search, page, svr.GetConfig().CompaniesPerPage)
			if err != nil {
				svr.Log(err, "unable to load companies from upstream")
				svr.Render(w, r, http.StatusBadGateway, "companies.html", map[string]interface{}{
					"LoadError": true,
				})
				return
			}
			cp = cachedPage{Companies: companies, Meta: meta}
			if search == "" {
				var buf bytes.Buffer
				if err := gob.NewEncoder(&buf).Encode(cp); err == nil {
					if err := svr.CacheSet(cacheKey, buf.Bytes()); err != nil {
						svr.Log(err, "unable to cache companies page")
					}
				}
			}
		}
		pages := []int{}
		for i := 1; i <= cp.Meta.LastPage && i <= 8; i++ {
			pages = append(pages, i)
		}
		svr.Render(w, r, http.StatusOK, "companies.html", map[string]interface{}{
			"Companies":    cp.Companies,
			"SearchFilter": search,
			"CurrentPage":  cp.Meta.CurrentPage,
			"LastPage":     cp.Meta.LastPage,
			"PageIndexes":  pages,
			"TotalCount":   cp.Meta.Total,
		})
	}
}
