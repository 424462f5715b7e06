// Package remote implements the server-side half of the protocol: the
// Source capability real objects implement, the RemoteRegistry
// directory shared by every Node on one side of a transport, and Node
// itself, which fans requests in from linked peers and notifications
// out to them.
package remote
