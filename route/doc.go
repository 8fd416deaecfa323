// Package route implements conversation classification for specialist
// routing. A Router invokes a tool-less classifier model against one of
// three schemes: a two lane infrastructure/application split, a three lane
// service/data/MMS split, and a first-message-only variant of the three lane
// split. Response parsing is lenient and falls back to the scheme's
// foundational category, so a misbehaving classifier degrades routing
// quality without ever stopping a conversation.
package route
