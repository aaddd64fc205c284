package servicedef

import "net/url"

const (
	AuthenticationPath    = "/api/User/Authentication"
	CreateStoryPath       = "/api/Story/Create"
	EditStoryPathPrefix   = "/api/Story/Edit/"
	AllStoriesPath        = "/api/Story/All"
	DeleteStoryPathPrefix = "/api/Story/Delete/"
)

// Messages that the Story API includes in its response bodies.
const (
	MessageCreated        = "Successfully created!"
	MessageEdited         = "Successfully edited"
	MessageDeleted        = "Deleted successfully!"
	MessageNoSpoilers     = "No spoilers..."
	MessageUnableToDelete = "Unable to delete this story spoiler!"
)

type AuthenticationParams struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AuthenticationResponse struct {
	AccessToken string `json:"accessToken"`
}

// StoryParams is the request body for creating or editing a story. The API treats URL as optional.
type StoryParams struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	URL         string `json:"url" yaml:"url"`
}

// StoryResponse is the body returned by the create, edit, and delete endpoints.
type StoryResponse struct {
	Msg     string `json:"msg"`
	StoryID string `json:"storyId,omitempty"`
}

// Story is one element of the list returned by AllStoriesPath.
type Story struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
}

func EditStoryPath(id string) string {
	return EditStoryPathPrefix + url.PathEscape(id)
}

func DeleteStoryPath(id string) string {
	return DeleteStoryPathPrefix + url.PathEscape(id)
}
