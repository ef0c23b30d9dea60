package tui

import "errors"

// ErrMissingChatService is returned when the chat service is not provided.
var ErrMissingChatService = errors.New("tui: chat service is required")

// ErrMissingCorpusService is returned when the corpus service is not provided.
var ErrMissingCorpusService = errors.New("tui: corpus service is required")

// ErrMissingConnectorService is returned when the connector service is not provided.
var ErrMissingConnectorService = errors.New("tui: connector service is required")

// ErrMissingResumeController is returned when the resume controller is not provided.
var ErrMissingResumeController = errors.New("tui: resume controller is required")
