package storytests

import (
	"net/http"

	"github.com/storyspoiler/story-contract-tests/servicedef"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// DoErrorPathTests checks how the API rejects bad input. None of these tests depend on state
// left by other tests.
func DoErrorPathTests(t *T) {
	t.Run("create story without required fields", func(t *T) {
		// Built by hand rather than from StoryParams so that the url property is absent.
		body := ldvalue.ObjectBuild().
			Set("title", ldvalue.String("")).
			Set("description", ldvalue.String("")).
			Build()

		resp := t.Post(servicedef.CreateStoryPath, body)
		if id := t.StringField(resp, "storyId"); id != "" {
			t.Defer(func() { t.deleteLeftoverStory(id) })
		}
		t.RequireStatus(resp, http.StatusBadRequest)
	})

	t.Run("edit nonexistent story", func(t *T) {
		resp := t.Put(servicedef.EditStoryPath(t.Config().FakeStoryID), t.Config().NonexistentStoryEdit)
		t.RequireStatus(resp, http.StatusNotFound)
		t.AssertBodyContains(resp, servicedef.MessageNoSpoilers)
	})

	t.Run("delete nonexistent story", func(t *T) {
		resp := t.Delete(servicedef.DeleteStoryPath(t.Config().FakeStoryID))
		t.RequireStatus(resp, http.StatusBadRequest)
		t.AssertBodyContains(resp, servicedef.MessageUnableToDelete)
	})
}

// deleteLeftoverStory removes a story that a negative test created by mistake, so that it does not
// accumulate across runs.
func (t *T) deleteLeftoverStory(id string) {
	resp, err := t.Client().Delete(servicedef.DeleteStoryPath(id))
	if err != nil {
		t.Debug("Could not delete leftover story %q: %s", id, err)
		return
	}
	t.Debug("Deleted leftover story %q: %s", id, resp)
}
