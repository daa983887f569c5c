/*
Package topology builds the request graph for the NFS cluster profile from a
validated params.Set.

The build is a single deterministic pass:

 1. The shared LAN is created with best-effort, VLAN tagging and link
    multiplexing enabled.

 2. If a dataset was requested, the NFS server is added to the LAN together
    with a remote blockstore for the dataset and a dedicated link between the
    two. Without a dataset none of these exist.

 3. Clients node1..nodeN are added to the LAN in order. Each one boots the
    selected image unless its override slot names another, and optionally
    gets a hardware type, the client mount service and local scratch storage.

The resulting request is validated before it is returned.
*/
package topology
