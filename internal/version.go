package internal

// Version is the current release of openai-dictionary
const Version = "0.3.0"
