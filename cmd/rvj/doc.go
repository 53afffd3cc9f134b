// Command rvj is the export backend CLI: it trims timeline clips with
// ffmpeg, concatenates them losslessly, and muxes an external audio track
// into the final video.
package main
