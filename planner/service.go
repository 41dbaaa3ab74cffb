// Package planner implements the mutation and read operations behind the
// HTTP surface: project CRUD, board tasks, team membership, invitations
// and personal activities. Every operation takes the acting user's id
// explicitly and runs authenticate → load → authorize → validate → write,
// surfacing failures as *Error values keyed by kind.
package planner

import (
	"time"

	"github.com/sirupsen/logrus"
)

// TaskDeletePolicy selects who may delete a board task.
type TaskDeletePolicy int

const (
	// TaskDeleteMembersOnly requires the actor to be on the team of the
	// task's project. Default.
	TaskDeleteMembersOnly TaskDeletePolicy = iota
	// TaskDeleteAnyUser keeps the legacy behavior: any authenticated
	// user may delete any existing task.
	TaskDeleteAnyUser
)

// Service wires the decision rules to the store and directory
// collaborators.
type Service struct {
	store      Store
	users      Directory
	log        *logrus.Logger
	now        func() time.Time
	taskDelete TaskDeletePolicy
}

func NewService(store Store, users Directory, logger *logrus.Logger) *Service {
	return &Service{
		store:      store,
		users:      users,
		log:        logger,
		now:        time.Now,
		taskDelete: TaskDeleteMembersOnly,
	}
}

// SetTaskDeletePolicy switches the delete-task rule. See TaskDeletePolicy.
func (s *Service) SetTaskDeletePolicy(p TaskDeletePolicy) { s.taskDelete = p }
