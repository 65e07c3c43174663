package worker

import (
	"text2phenotype.com/hmt/tasks"
	"fmt"
)

type redisTransactions interface {
	getTagTask(redisKey string) (*tasks.TagTask, error)
	onTaskStarted(task *Task) error
	onTaskCancelled(task *Task, errorMessages ...string) error
	onTaskExceededRetries(task *Task, maxRetries int) error
	onTaskFailedWithError(task *Task, err error) error
	onTaskComplete(task *Task) error
	close()
}

type redisClientWrapper struct {
	tasksClient      *tasks.Client
	modelFingerprint string
}

func (wrapper *redisClientWrapper) close() {
	wrapper.tasksClient.Close()
}

func (wrapper *redisClientWrapper) getTagTask(redisKey string) (*tasks.TagTask, error) {
	return wrapper.tasksClient.Tags.Get(redisKey)
}

func (wrapper *redisClientWrapper) onTaskStarted(task *Task) error {
	return wrapper.tasksClient.Tags.Update(task.redisKey, func(tagTask *tasks.TagTask) {
		tagTask.TaskStatuses.HMT.Status = tasks.TaskStatusStarted
		tagTask.TaskStatuses.HMT.Attempts += 1
		tagTask.TaskStatuses.HMT.StartedAt = getFormattedNow()
		tagTask.TaskStatuses.HMT.CompletedAt = nil
	})
}

func (wrapper *redisClientWrapper) onTaskCancelled(task *Task, errorMessages ...string) error {
	return wrapper.tasksClient.Tags.Update(task.redisKey, func(tagTask *tasks.TagTask) {
		tagTask.TaskStatuses.HMT.Status = tasks.TaskStatusCanceled
		tagTask.TaskStatuses.HMT.StartedAt = getFormattedNow()
		tagTask.TaskStatuses.HMT.CompletedAt = getFormattedNow()
		tagTask.TaskStatuses.HMT.Attempts += 1
		tagTask.TaskStatuses.HMT.ErrorMessages = append(
			tagTask.TaskStatuses.HMT.ErrorMessages,
			errorMessages...,
		)
	})
}

func (wrapper *redisClientWrapper) onTaskExceededRetries(task *Task, maxRetries int) error {
	return wrapper.tasksClient.Tags.Update(task.redisKey, func(tagTask *tasks.TagTask) {
		tagTask.TaskStatuses.HMT.Status = tasks.TaskStatusCompletedFailure
		tagTask.TaskStatuses.HMT.StartedAt = getFormattedNow()
		tagTask.TaskStatuses.HMT.CompletedAt = getFormattedNow()
		tagTask.TaskStatuses.HMT.Attempts += 1
		tagTask.TaskStatuses.HMT.ErrorMessages = append(
			tagTask.TaskStatuses.HMT.ErrorMessages,
			fmt.Sprintf(
				"Task has exceeded retries. (Attempts: %d, max retries: %d )",
				tagTask.TaskStatuses.HMT.Attempts,
				maxRetries,
			),
		)
	})
}

func (wrapper *redisClientWrapper) onTaskFailedWithError(task *Task, err error) error {
	return wrapper.tasksClient.Tags.Update(task.redisKey, func(tagTask *tasks.TagTask) {
		tagTask.TaskStatuses.HMT.Status = tasks.TaskStatusFailed
		tagTask.TaskStatuses.HMT.CompletedAt = getFormattedNow()
		tagTask.TaskStatuses.HMT.ErrorMessages = append(tagTask.TaskStatuses.HMT.ErrorMessages, err.Error())
	})
}

func (wrapper *redisClientWrapper) onTaskComplete(task *Task) error {
	return wrapper.tasksClient.Tags.Update(task.redisKey, func(tagTask *tasks.TagTask) {
		if !tagTask.TaskStatuses.HMT.Status.Complete() {
			tagTask.TaskStatuses.HMT.Status = tasks.TaskStatusCompletedSuccess
		}
		tagTask.TaskStatuses.HMT.CompletedAt = getFormattedNow()
		tagTask.TaskStatuses.HMT.ResultsFileKey = getResultsFileKey(task)
		tagTask.TaskStatuses.HMT.ModelFingerprint = wrapper.modelFingerprint
	})
}
