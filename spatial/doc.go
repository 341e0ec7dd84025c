// SPDX-License-Identifier: EPL-2.0

/*
Package spatial renders mono point sources as heard by a stereo listener in
3D space.

Each voice keeps a delay line of its recent output. Every block, the scene
works out how long sound from the source takes to reach each ear at the
start and end of the block and reads the line along that changing delay. A
source moving towards the listener is read faster than it was written and
sounds higher, a receding one lower. Loudness falls with distance beyond the
source radius and depends on which side of the head the source is on.

	handle, scene, err := spatial.New(spatial.DefaultConfig())
	if err != nil {
	    return err
	}

	opts := spatial.DefaultOptions()
	opts.Position = spatial.Vec3{X: -20, Z: -5}
	opts.Velocity = spatial.Vec3{X: 10}
	car, err := handle.Play(signal.NewCycle(engine), opts)

	// audio callback
	scene.Render(48000, out)

Like mixer scenes, a spatial scene is split into a Handle for control code
and a Scene for the render goroutine. Voices whose signal ends keep playing
until the last of their sound has arrived, then retire. Stop drops them at
the next block.
*/
package spatial
