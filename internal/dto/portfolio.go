package dto

// CreatedResponse is returned by every create endpoint.
type CreatedResponse struct {
	ID string `json:"id"`
}

// LoginRequest carries the identity provider token obtained by the client.
type LoginRequest struct {
	IDToken string `json:"idToken" validate:"required"`
}

// LoginResponse echoes the token the client should send as bearer.
type LoginResponse struct {
	Token string `json:"token"`
}

// CreatePublicationRequest is the payload for adding a publication.
type CreatePublicationRequest struct {
	Heading     string  `json:"heading" validate:"required"`
	Description string  `json:"description" validate:"required"`
	Link        *string `json:"link"`
}

// UpdatePublicationRequest carries only the fields being changed.
type UpdatePublicationRequest struct {
	Heading     *string `json:"heading"`
	Description *string `json:"description"`
	Link        *string `json:"link"`
}

// CreateWatchItemRequest is the payload for adding a watch-out-for item.
type CreateWatchItemRequest struct {
	Heading string  `json:"heading" validate:"required"`
	Link    *string `json:"link"`
}

// UpdateWatchItemRequest carries only the fields being changed.
type UpdateWatchItemRequest struct {
	Heading *string `json:"heading"`
	Link    *string `json:"link"`
}

// SaveInterestsRequest replaces the research interests document.
type SaveInterestsRequest struct {
	Heading   string          `json:"heading" validate:"required"`
	Paragraph string          `json:"paragraph" validate:"required"`
	Interests []InterestInput `json:"interests" validate:"required,dive"`
}

// InterestInput is one interest entry. A missing id is generated.
type InterestInput struct {
	ID          string `json:"id"`
	Heading     string `json:"heading" validate:"required"`
	Description string `json:"description"`
}

// LectureInput describes a lecture submitted inside a course form.
type LectureInput struct {
	Name  string  `json:"name" validate:"required"`
	Video *string `json:"video"`
}

// CreateCourseRequest is decoded from the course multipart form.
type CreateCourseRequest struct {
	CourseCode    string         `json:"course_code" validate:"required"`
	CourseName    string         `json:"course_name" validate:"required"`
	Description   string         `json:"description"`
	Venue         string         `json:"venue"`
	Prerequisites []string       `json:"prerequisites"`
	References    []string       `json:"references"`
	Resources     []string       `json:"resources"`
	Lectures      []LectureInput `json:"lectures" validate:"dive"`
}

// UpdateCourseRequest carries only the fields being changed. List fields are
// replaced wholesale when present.
type UpdateCourseRequest struct {
	CourseCode    *string   `json:"course_code"`
	CourseName    *string   `json:"course_name"`
	Description   *string   `json:"description"`
	Venue         *string   `json:"venue"`
	Prerequisites *[]string `json:"prerequisites"`
	References    *[]string `json:"references"`
	Resources     *[]string `json:"resources"`
}

// CreateLectureRequest appends a lecture to a course.
type CreateLectureRequest struct {
	Name  string  `json:"name" validate:"required"`
	Video *string `json:"video"`
}

// UpdateLectureRequest edits the lecture at an index. LectureID, when set,
// must match the lecture currently at that index.
type UpdateLectureRequest struct {
	Name      *string `json:"name"`
	Video     *string `json:"video"`
	LectureID *string `json:"lecture_id"`
}

// CreateProjectRequest is decoded from the project multipart form.
type CreateProjectRequest struct {
	Heading     string `json:"heading" validate:"required"`
	Description string `json:"description" validate:"required"`
}

// UpdateProjectRequest edits a project. ImagesToDelete holds storage paths.
type UpdateProjectRequest struct {
	Heading        *string  `json:"heading"`
	Description    *string  `json:"description"`
	ImagesToDelete []string `json:"imagesToDelete"`
}
