// Package selectctl provides the debounced remote-search select control used
// for each level of the order form. It is a bubbletea component: every state
// transition happens inside Update on the program's event loop, and the only
// work that leaves the loop is the fetch command itself.
//
// Two counters guard the option list. The debounce sequence makes sure only
// the last keystroke inside the interval triggers a fetch. The generation,
// together with the reset epoch, makes sure only the response to the latest
// request is rendered; anything older completes on the wire and is dropped
// when it reaches Update.
package selectctl
