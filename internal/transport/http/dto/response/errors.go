package response

var (
	ErrUnauthorized = ErrorResponse("Unauthorized")

	ErrInvalidAdminKey = ErrorResponse("Invalid admin key")

	ErrInvalidRequestFormat = ErrorResponse("Invalid request format")

	ErrInvalidID = ErrorResponse("Invalid id")

	ErrInvalidInput = ErrorResponse("Invalid input")

	ErrNotFound = ErrorResponse("Not found")

	ErrAlreadyExists = ErrorResponse("Already exists")

	ErrFileTooLarge = ErrorResponse("File size exceeds limit")

	ErrInvalidFileType = ErrorResponse("Invalid file type. Allowed: jpeg, png, webp, gif")

	ErrInternal = ErrorResponse("Internal server error")
)
