/*
Package domain contains the core data model of the training simulator:
scenario graphs, checklist rules, transitions, session turns and reports.

All types are plain records decoded once at content-load time. The
evaluation and scenario packages operate on them without further
validation.
*/
package domain
