package camera

// OrbitControllerOption is a functional option for configuring an OrbitController.
type OrbitControllerOption func(*OrbitController)

// WithTarget sets the look-at/pivot point.
//
// Parameters:
//   - x: X coordinate of the target
//   - y: Y coordinate of the target
//   - z: Z coordinate of the target
//
// Returns:
//   - OrbitControllerOption: functional option to set the target position
func WithTarget(x, y, z float32) OrbitControllerOption {
	return func(oc *OrbitController) {
		oc.target = [3]float32{x, y, z}
	}
}

// WithRadiusBounds sets the minimum and maximum orbit radius.
//
// Parameters:
//   - min: minimum zoom distance
//   - max: maximum zoom distance
//
// Returns:
//   - OrbitControllerOption: functional option to set radius bounds
func WithRadiusBounds(min, max float32) OrbitControllerOption {
	return func(oc *OrbitController) {
		oc.minRadius = min
		oc.maxRadius = max
	}
}

// WithElevationBounds sets the minimum and maximum elevation angles.
//
// Parameters:
//   - min: minimum vertical angle in radians
//   - max: maximum vertical angle in radians
//
// Returns:
//   - OrbitControllerOption: functional option to set elevation bounds
func WithElevationBounds(min, max float32) OrbitControllerOption {
	return func(oc *OrbitController) {
		oc.minElevation = min
		oc.maxElevation = max
	}
}

// WithMouseSensitivity sets the radians of angular velocity per dragged pixel.
//
// Parameters:
//   - sensitivity: multiplier for mouse movement
//
// Returns:
//   - OrbitControllerOption: functional option to set mouse sensitivity
func WithMouseSensitivity(sensitivity float32) OrbitControllerOption {
	return func(oc *OrbitController) {
		oc.mouseSensitivity = sensitivity
	}
}

// WithZoomSpeed sets the radius change per wheel step.
//
// Parameters:
//   - speed: multiplier for zoom input
//
// Returns:
//   - OrbitControllerOption: functional option to set zoom speed
func WithZoomSpeed(speed float32) OrbitControllerOption {
	return func(oc *OrbitController) {
		oc.zoomSpeed = speed
	}
}

// WithDamping sets the fraction of angular velocity applied, and removed, per frame.
// Values outside (0, 1] are ignored.
//
// Parameters:
//   - factor: the damping factor
//
// Returns:
//   - OrbitControllerOption: functional option to set damping
func WithDamping(factor float32) OrbitControllerOption {
	return func(oc *OrbitController) {
		if factor > 0 && factor <= 1 {
			oc.damping = factor
		}
	}
}

// FlyControllerOption is a functional option for configuring a FlyController.
type FlyControllerOption func(*FlyController)

// WithMovementSpeed sets the translation speed in units per second.
func WithMovementSpeed(speed float32) FlyControllerOption {
	return func(fc *FlyController) {
		fc.movementSpeed = speed
	}
}

// WithRollSpeed sets the rotation speed in radians per second.
func WithRollSpeed(speed float32) FlyControllerOption {
	return func(fc *FlyController) {
		fc.rollSpeed = speed
	}
}

// WithDragToLook sets whether the cursor steers only while the mouse button is held.
// When false the cursor never steers.
func WithDragToLook(enabled bool) FlyControllerOption {
	return func(fc *FlyController) {
		fc.dragToLook = enabled
	}
}
