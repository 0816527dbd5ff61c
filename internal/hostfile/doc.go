// Package hostfile reads, writes and watches the ssh config file that
// backs the host list.
//
// Load never fails on a missing file; it returns an empty document so a
// fresh install can add its first host. Save keeps the previous contents
// in <path>.bak, writes through a temporary file and a rename, and leaves
// the result with mode 0600 as ssh expects.
//
// Watch follows the directory rather than the file, so editors that save
// by renaming a temporary file over the config are still noticed.
package hostfile
