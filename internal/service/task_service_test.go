package service

import (
	"testing"

	"bizflow-backend/internal/model"
	"bizflow-backend/internal/notifier"
	"bizflow-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTaskService(t *testing.T) (TaskService, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	return NewTaskService(repository.NewTaskRepo(db), notifier.New()), db
}

func TestCreateTaskAppliesDefaults(t *testing.T) {
	svc, _ := newTaskService(t)

	task := &model.Task{Title: "Write quarterly report"}
	require.NoError(t, svc.Create(task))

	assert.Equal(t, model.TaskTodo, task.Status)
	assert.Equal(t, model.PriorityMedium, task.Priority)
}

func TestCreateTaskRequiresTitle(t *testing.T) {
	svc, _ := newTaskService(t)

	err := svc.Create(&model.Task{})
	assert.Error(t, err)
}

func TestUpdateTaskPartialFields(t *testing.T) {
	svc, db := newTaskService(t)
	assignee := createTestUser(t, db, "worker@example.com", model.RoleUser)

	task := &model.Task{Title: "Triage bug backlog", Priority: model.PriorityHigh}
	require.NoError(t, svc.Create(task))

	status := model.TaskInProgress
	assigneeID := assignee.ID
	updated, err := svc.Update(task.ID, &UpdateTaskRequest{
		Status:     &status,
		AssigneeID: &assigneeID,
	})
	require.NoError(t, err)

	assert.Equal(t, model.TaskInProgress, updated.Status)
	assert.Equal(t, model.PriorityHigh, updated.Priority, "untouched fields keep their values")
	require.NotNil(t, updated.AssigneeID)
	assert.Equal(t, assignee.ID, *updated.AssigneeID)
}

func TestUpdateTaskUnknownID(t *testing.T) {
	svc, _ := newTaskService(t)

	title := "ghost"
	_, err := svc.Update(uuid.New(), &UpdateTaskRequest{Title: &title})
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestListTasksFiltered(t *testing.T) {
	svc, db := newTaskService(t)
	assignee := createTestUser(t, db, "worker@example.com", model.RoleUser)

	project := &model.Project{Name: "Launch"}
	require.NoError(t, db.Create(project).Error)

	assigneeID := assignee.ID
	projectID := project.ID
	require.NoError(t, svc.Create(&model.Task{Title: "A", AssigneeID: &assigneeID, ProjectID: &projectID}))
	require.NoError(t, svc.Create(&model.Task{Title: "B", ProjectID: &projectID}))
	require.NoError(t, svc.Create(&model.Task{Title: "C"}))

	byProject, err := svc.List(repository.TaskFilter{ProjectID: &projectID})
	require.NoError(t, err)
	assert.Len(t, byProject, 2)

	byAssignee, err := svc.List(repository.TaskFilter{AssigneeID: &assigneeID})
	require.NoError(t, err)
	require.Len(t, byAssignee, 1)
	assert.Equal(t, "A", byAssignee[0].Title)

	all, err := svc.List(repository.TaskFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestDeleteTask(t *testing.T) {
	svc, _ := newTaskService(t)

	task := &model.Task{Title: "Temporary"}
	require.NoError(t, svc.Create(task))

	require.NoError(t, svc.Delete(task.ID))

	_, err := svc.Get(task.ID)
	assert.ErrorIs(t, err, ErrTaskNotFound)

	assert.ErrorIs(t, svc.Delete(task.ID), ErrTaskNotFound)
}
