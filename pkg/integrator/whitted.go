package integrator

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

const (
	// DefaultMaxBounces is the recursion budget for reflected and refracted rays
	DefaultMaxBounces = 4

	// surfaceBias offsets secondary ray origins off the surface
	surfaceBias = 1e-6

	// contributionEpsilon skips reflection or refraction with a negligible weight
	contributionEpsilon = 1e-6

	vacuumRefractiveIndex = 1.0
)

// TracedRay is a ray plus the IDs of the transparent objects it is currently
// inside, innermost last. The stack decides which refractive index surrounds
// a surface.
type TracedRay struct {
	Ray           core.Ray
	InsideObjects []int
}

// WhittedIntegrator implements recursive Whitted-style ray tracing:
// Phong direct lighting with hard shadows, plus mirror reflection and
// Fresnel-weighted refraction.
type WhittedIntegrator struct {
	MaxBounces int
}

// NewWhittedIntegrator creates an integrator with the given bounce budget
func NewWhittedIntegrator(maxBounces int) *WhittedIntegrator {
	if maxBounces < 0 {
		maxBounces = 0
	}
	return &WhittedIntegrator{MaxBounces: maxBounces}
}

// RayColor traces a primary ray starting outside every object
func (wi *WhittedIntegrator) RayColor(ray core.Ray, s *scene.Scene) core.Color {
	return CastRay(s, TracedRay{Ray: ray}, wi.MaxBounces)
}

// CastRay returns the radiance arriving along ray. remainingBounces limits the
// depth of reflected and refracted rays and drops by one on every recursion.
func CastRay(s *scene.Scene, ray TracedRay, remainingBounces int) core.Color {
	hit, ok := s.ClosestIntersection(ray.Ray)
	if !ok {
		return core.Black
	}
	return shade(s, ray, hit, remainingBounces)
}

// shade computes the color at a hit point
func shade(s *scene.Scene, ray TracedRay, hit scene.SceneIntersection, remainingBounces int) core.Color {
	mat := hit.Object.Material
	shape := hit.Object.Shape

	exactPoint := hit.Point(ray.Ray)
	normal := hit.Normal(exactPoint)
	point := exactPoint.Add(normal.Multiply(surfaceBias))

	// Ambient term
	color := s.Ambient.Color.
		Multiply(mat.AmbientColor.ColorAt(shape, exactPoint).Scale(mat.AmbientReflection)).
		Scale(s.Ambient.Intensity)

	// Direct lighting with hard shadows
	toEye := ray.Ray.Direction.Negate()
	for _, light := range s.Lights {
		toLight, distance := light.ToLight(point)
		if s.IsOccluded(core.NewRay(point, toLight), distance) {
			continue
		}

		radiance := light.Radiance()
		diffuse := mat.DiffuseReflection * math.Max(0, normal.Dot(toLight))
		specular := mat.SpecularReflection *
			math.Pow(math.Max(0, toLight.Reflect(normal).Dot(toEye)), mat.Shininess)

		color = color.Add(radiance.Multiply(mat.DiffuseColor.ColorAt(shape, exactPoint)).Scale(diffuse))
		color = color.Add(radiance.Multiply(mat.SpecularColor.ColorAt(shape, exactPoint)).Scale(specular))
	}

	if remainingBounces <= 0 {
		return color
	}

	if mat.Reflectivity > contributionEpsilon {
		reflected := TracedRay{
			Ray:           core.NewRay(point, toEye.Reflect(normal)),
			InsideObjects: ray.InsideObjects,
		}
		color = color.Add(CastRay(s, reflected, remainingBounces-1).Scale(mat.Reflectivity))
	}

	if mat.Transparency > contributionEpsilon {
		kr, reflectedColor, refractedColor := transmit(s, ray, hit, exactPoint, normal, remainingBounces)
		blend := reflectedColor.Scale(kr).Add(refractedColor.Scale(1 - kr))
		color = color.Add(blend.Scale(mat.Transparency))
	}

	return color
}

// transmit traces the reflected and refracted rays at a transparent surface
// and returns the Fresnel reflectance with both colors. Under total internal
// reflection kr is 1 and the refracted color is black.
func transmit(s *scene.Scene, ray TracedRay, hit scene.SceneIntersection, exactPoint, normal core.Vec3, remainingBounces int) (float64, core.Color, core.Color) {
	mat := hit.Object.Material
	direction := ray.Ray.Direction
	entering := direction.Dot(normal) < 0

	surrounding := surroundingRefractiveIndex(s, ray.InsideObjects, hit.Object.ID)
	kr := Fresnel(direction, normal, mat.RefractiveIndex, surrounding)

	// Offsets on the incident and transmitted sides of the surface
	incidentSide := normal.Multiply(surfaceBias)
	if !entering {
		incidentSide = incidentSide.Negate()
	}

	refractedColor := core.Black
	if kr < 1 {
		var inside []int
		if entering {
			inside = pushObject(ray.InsideObjects, hit.Object.ID)
		} else {
			inside = removeObject(ray.InsideObjects, hit.Object.ID)
		}
		refracted := TracedRay{
			Ray:           core.NewRay(exactPoint.Subtract(incidentSide), Refract(direction, normal, mat.RefractiveIndex, surrounding)),
			InsideObjects: inside,
		}
		refractedColor = CastRay(s, refracted, remainingBounces-1)
	}

	reflected := TracedRay{
		Ray:           core.NewRay(exactPoint.Add(incidentSide), direction.Negate().Reflect(normal)),
		InsideObjects: ray.InsideObjects,
	}
	reflectedColor := CastRay(s, reflected, remainingBounces-1)

	return kr, reflectedColor, refractedColor
}

// surroundingRefractiveIndex returns the index of the medium enclosing the
// surface of object id: the innermost other object on the stack, or vacuum.
func surroundingRefractiveIndex(s *scene.Scene, inside []int, id int) float64 {
	for i := len(inside) - 1; i >= 0; i-- {
		if inside[i] == id {
			continue
		}
		if object, ok := s.Object(inside[i]); ok {
			return object.Material.RefractiveIndex
		}
	}
	return vacuumRefractiveIndex
}

// pushObject returns a new stack with id on top; the input is never modified
func pushObject(inside []int, id int) []int {
	next := make([]int, len(inside), len(inside)+1)
	copy(next, inside)
	return append(next, id)
}

// removeObject returns a new stack without id
func removeObject(inside []int, id int) []int {
	next := make([]int, 0, len(inside))
	for _, other := range inside {
		if other != id {
			next = append(next, other)
		}
	}
	return next
}

// Fresnel returns the fraction of light reflected at a dielectric surface,
// averaging the s and p polarizations. normal is the outward surface normal,
// refractiveIndex is the material's and surrounding the medium outside it.
// Total internal reflection yields exactly 1.
func Fresnel(incident, normal core.Vec3, refractiveIndex, surrounding float64) float64 {
	cosi := math.Max(-1, math.Min(1, incident.Dot(normal)))
	etai, etat := surrounding, refractiveIndex
	if cosi > 0 {
		etai, etat = etat, etai
	}

	sint := etai / etat * math.Sqrt(math.Max(0, 1-cosi*cosi))
	if sint >= 1 {
		return 1
	}

	cost := math.Sqrt(math.Max(0, 1-sint*sint))
	cosi = math.Abs(cosi)
	rs := (etat*cosi - etai*cost) / (etat*cosi + etai*cost)
	rp := (etai*cosi - etat*cost) / (etai*cosi + etat*cost)
	return (rs*rs + rp*rp) / 2
}

// Refract bends incident through the surface by Snell's law. It returns the
// zero vector under total internal reflection.
func Refract(incident, normal core.Vec3, refractiveIndex, surrounding float64) core.Vec3 {
	cosi := math.Max(-1, math.Min(1, incident.Dot(normal)))
	etai, etat := surrounding, refractiveIndex
	n := normal
	if cosi < 0 {
		cosi = -cosi
	} else {
		etai, etat = etat, etai
		n = normal.Negate()
	}

	eta := etai / etat
	k := 1 - eta*eta*(1-cosi*cosi)
	if k < 0 {
		return core.Vec3{}
	}
	return incident.Multiply(eta).Add(n.Multiply(eta*cosi - math.Sqrt(k))).Normalize()
}

// Compile-time interface check
var _ Integrator = (*WhittedIntegrator)(nil)
