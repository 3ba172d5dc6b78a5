package controllers

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/navbryce/yatube/db"
	"github.com/navbryce/yatube/model"
	"github.com/navbryce/yatube/util"
)

type groupList struct {
	groups    []*model.Group
	fetchedAt time.Time
}

func (gl *groupList) isNewer(list *groupList) bool {
	return gl.fetchedAt.After(list.fetchedAt)
}

const DefaultGroupRefreshInterval = time.Minute * 20

// GroupController keeps every group in memory for the post form's choices.
// Groups change rarely and only through yatubectl
type GroupController struct {
	db           db.GroupDatabase
	cached       *groupList
	cachedLock   sync.RWMutex
	updateTicker *time.Ticker
}

// NewGroupController loads the groups and refreshes them every interval until c is done
func NewGroupController(c context.Context, db db.GroupDatabase, interval time.Duration) (*GroupController, error) {
	controller := &GroupController{
		db: db,
	}
	if err := controller.Refresh(c); err != nil {
		return nil, err
	}
	if interval <= 0 {
		interval = DefaultGroupRefreshInterval
	}

	controller.updateTicker = time.NewTicker(interval)
	go func() {
		defer controller.updateTicker.Stop()
		defer func() {
			if r := recover(); r != nil {
				slog.Error("recovered while refreshing cached groups", "panic", r)
			}
		}()
		for {
			select {
			case <-controller.updateTicker.C:
				controller.attemptToRefresh(c)
			case <-c.Done():
				return
			}
		}
	}()

	return controller, nil
}

func (gc *GroupController) Groups() []*model.Group {
	gc.cachedLock.RLock()
	defer gc.cachedLock.RUnlock()
	return gc.cached.groups
}

// GetGroupBySlug reads the store, yatubectl changes groups behind the cached list
func (gc *GroupController) GetGroupBySlug(c context.Context, slug string) (*model.Group, *util.HTTPError) {
	group, err := gc.db.GetGroupBySlug(c, slug)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	if group == nil {
		return nil, util.NotFound("group")
	}
	return group, nil
}

// GroupExists checks a group picked from the cached list. A miss refreshes the list
func (gc *GroupController) GroupExists(c context.Context, id int64) (bool, error) {
	group, err := gc.db.GetGroupById(c, id)
	if err != nil {
		return false, err
	}
	if group == nil {
		gc.attemptToRefresh(c)
		return false, nil
	}
	return true, nil
}

func (gc *GroupController) attemptToRefresh(c context.Context) {
	if err := gc.Refresh(c); err != nil {
		slog.Error("an error occurred while refreshing cached groups", "err", err)
	}
}

func (gc *GroupController) Refresh(c context.Context) error {
	fetchedAt := time.Now()
	groups, err := gc.db.GetGroups(c)
	if err != nil {
		return err
	}
	list := &groupList{
		groups:    groups,
		fetchedAt: fetchedAt,
	}

	// start of cachedLock
	gc.cachedLock.Lock()
	defer gc.cachedLock.Unlock()
	if gc.cached == nil || !gc.cached.isNewer(list) {
		gc.cached = list
	}
	// end of cachedLock
	return nil
}
