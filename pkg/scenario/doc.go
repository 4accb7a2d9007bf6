/*
Package scenario holds the process-lifetime scenario graph store and the
transition resolver.

The store loads all scenario definitions lazily on first access, guarded
by sync.Once; after that every accessor is a lock-free read over the
cached, immutable graphs. The cache is never invalidated at runtime;
content changes require a process restart.
*/
package scenario
