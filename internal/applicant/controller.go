package applicant

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/hiredeck/hiredeck/internal/api"
)

type repository interface {
	ApplicationsByQuery(Filters) ([]Application, api.Meta, error)
	UpdateApplicationStatus(id int, newStatus, notes string) (Application, error)
	BulkUpdateStatus(ids []int, newStatus, notes string) (int, error)
}

// Controller owns the dashboard's working set: the currently loaded page of
// applications, the active filters, and the selection. Mutations go through
// the repository and are reconciled optimistically; counts are always
// re-derived from the set. Concurrent use is safe, but two in-flight
// mutations of the same application are not serialised: the last reply to
// arrive wins locally, the upstream API decides the authoritative order.
type Controller struct {
	repo repository

	mu           sync.Mutex
	applications []Application
	meta         api.Meta
	filters      Filters
	selection    map[int]struct{}
	loading      bool
	lastErr      error
	loadSeq      uint64
	closed       bool
}

func NewController(repo repository) *Controller {
	return &Controller{
		repo:      repo,
		selection: make(map[int]struct{}),
	}
}

// Load fetches one page and replaces the working set wholesale. Changing
// the status filter clears the selection, so a bulk action can never touch
// records that are no longer visible. A load that gets superseded by a
// newer one (or by Close) has its result discarded on arrival.
func (c *Controller) Load(f Filters) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return fmt.Errorf("controller is closed")
	}
	if f.Status != c.filters.Status {
		c.selection = make(map[int]struct{})
	}
	c.filters = f
	c.loading = true
	c.loadSeq++
	seq := c.loadSeq
	c.mu.Unlock()

	applications, meta, err := c.repo.ApplicationsByQuery(f)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || seq != c.loadSeq {
		// a newer load owns the working set now, this result is stale
		return nil
	}
	c.loading = false
	if err != nil {
		// previously loaded page stays visible, Retry replays the filters
		c.lastErr = err
		return err
	}
	c.lastErr = nil
	c.applications = applications
	c.meta = meta
	return nil
}

// Retry re-invokes Load with the last-used filters.
func (c *Controller) Retry() error {
	c.mu.Lock()
	f := c.filters
	c.mu.Unlock()
	return c.Load(f)
}

// Close marks the controller torn down; in-flight results are discarded.
func (c *Controller) Close() {
	c.mu.Lock()
	c.closed = true
	c.loading = false
	c.mu.Unlock()
}

func (c *Controller) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

func (c *Controller) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

func (c *Controller) Filters() Filters {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filters
}

func (c *Controller) Meta() api.Meta {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.meta
}

// Applications returns a copy of the loaded page.
func (c *Controller) Applications() []Application {
	c.mu.Lock()
	defer c.mu.Unlock()
	return copyApplications(c.applications)
}

// ApplyLocalSearch narrows the loaded page by a case-insensitive substring
// match on candidate name, job title and company name. It is a narrowing
// filter over the current page only and cannot surface records from other
// pages. An empty term returns the page unmodified.
func (c *Controller) ApplyLocalSearch(term string) []Application {
	c.mu.Lock()
	defer c.mu.Unlock()
	if strings.TrimSpace(term) == "" {
		return copyApplications(c.applications)
	}
	needle := strings.ToLower(strings.TrimSpace(term))
	out := make([]Application, 0, len(c.applications))
	for _, a := range c.applications {
		if strings.Contains(strings.ToLower(a.CandidateName), needle) ||
			strings.Contains(strings.ToLower(a.JobTitle), needle) ||
			strings.Contains(strings.ToLower(a.CompanyName), needle) {
			out = append(out, a)
		}
	}
	return out
}

// CountsByStatus derives the per-status tab counters from the loaded set.
func (c *Controller) CountsByStatus() map[string]int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return CountByStatus(c.applications)
}

// Select adds an application to the selection; ids outside the loaded page
// are ignored.
func (c *Controller) Select(id int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.indexOf(id) < 0 {
		return
	}
	c.selection[id] = struct{}{}
}

func (c *Controller) Deselect(id int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.selection, id)
}

func (c *Controller) ClearSelection() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selection = make(map[int]struct{})
}

// Selection returns the selected ids in ascending order.
func (c *Controller) Selection() []int {
	c.mu.Lock()
	defer c.mu.Unlock()
	ids := make([]int, 0, len(c.selection))
	for id := range c.selection {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// UpdateStatus transitions one application currently held in the working
// set. On success the local record takes the server-confirmed status and
// timestamp; on failure it is left untouched and the error is returned for
// the caller to surface. No retry.
func (c *Controller) UpdateStatus(id int, newStatus, notes string) error {
	c.mu.Lock()
	if c.indexOf(id) < 0 {
		c.mu.Unlock()
		return fmt.Errorf("application %d is not in the loaded set", id)
	}
	c.mu.Unlock()

	updated, err := c.repo.UpdateApplicationStatus(id, newStatus, notes)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if i := c.indexOf(id); i >= 0 {
		c.applications[i].Status = updated.Status
		c.applications[i].StatusUpdatedAt = updated.StatusUpdatedAt
	}
	return nil
}

// BulkUpdateStatus applies one status to the given ids in a single batched
// request and returns the count the server reports. An empty id set is a
// no-op with no request. The first updated_count records are patched
// locally in the order given; there is no per-item reconciliation, the
// upstream only reports an aggregate count. The selection is cleared once
// the action completes, success or failure, so it cannot be re-applied by
// accident.
func (c *Controller) BulkUpdateStatus(ids []int, newStatus, notes string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	defer c.ClearSelection()

	count, err := c.repo.BulkUpdateStatus(ids, newStatus, notes)
	if err != nil {
		return 0, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	now := time.Now().UTC()
	patched := 0
	for _, id := range ids {
		if patched >= count {
			break
		}
		if i := c.indexOf(id); i >= 0 {
			c.applications[i].Status = newStatus
			c.applications[i].StatusUpdatedAt = now
		}
		patched++
	}
	return count, nil
}

// indexOf requires c.mu held.
func (c *Controller) indexOf(id int) int {
	for i, a := range c.applications {
		if a.ID == id {
			return i
		}
	}
	return -1
}

func copyApplications(in []Application) []Application {
	out := make([]Application, len(in))
	copy(out, in)
	return out
}
