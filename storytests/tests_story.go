package storytests

import (
	"net/http"

	"github.com/storyspoiler/story-contract-tests/servicedef"
)

// DoStoryLifecycleTests creates a story, then edits, lists, and deletes it. Each test after the
// first uses the story ID captured by the first, so if creation fails they fail too.
func DoStoryLifecycleTests(t *T) {
	t.Run("create story", func(t *T) {
		resp := t.Post(servicedef.CreateStoryPath, t.Config().Story)
		t.RequireStatus(resp, http.StatusCreated)

		t.AssertBodyContains(resp, servicedef.MessageCreated)
		t.setStoryID(t.RequireStringField(resp, "storyId"))
	})

	t.Run("edit story", func(t *T) {
		id := t.RequireStoryID()

		resp := t.Put(servicedef.EditStoryPath(id), t.Config().EditedStory)
		t.RequireStatus(resp, http.StatusOK)
		t.AssertBodyContains(resp, servicedef.MessageEdited)
	})

	t.Run("list all stories", func(t *T) {
		resp := t.Get(servicedef.AllStoriesPath)
		t.RequireStatus(resp, http.StatusOK)
		count := t.RequireNonEmptyArray(resp)
		t.Debug("API returned %d stories", count)
	})

	t.Run("delete story", func(t *T) {
		id := t.RequireStoryID()

		resp := t.Delete(servicedef.DeleteStoryPath(id))
		t.RequireStatus(resp, http.StatusOK)
		t.session.deleted = true
		t.AssertBodyContains(resp, servicedef.MessageDeleted)
	})

	// A deleted story should be indistinguishable from one that never existed.
	t.Run("delete story again", func(t *T) {
		id := t.RequireStoryID()
		if !t.session.deleted {
			t.SkipWithReason("the story was not deleted")
		}

		resp := t.Delete(servicedef.DeleteStoryPath(id))
		t.RequireStatus(resp, http.StatusBadRequest)
		t.AssertBodyContains(resp, servicedef.MessageUnableToDelete)
	})
}
