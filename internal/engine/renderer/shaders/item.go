// Package shaders holds the GLSL sources of the item renderer.
package shaders

// ItemVertexShader places instanced item meshes. The model matrix arrives
// as a per-instance attribute in locations 3-6.
const ItemVertexShader = `#version 410 core

layout (location = 0) in vec3 aPosition;
layout (location = 1) in vec3 aNormal;
layout (location = 3) in mat4 aModel;

uniform mat4 uViewProj;

out vec3 vWorldPos;
out vec3 vNormal;

void main() {
    vec4 world = aModel * vec4(aPosition, 1.0);
    vWorldPos = world.xyz;
    vNormal = mat3(aModel) * aNormal;
    gl_Position = uViewProj * world;
}
`

// ItemFragmentShader shades items with a sun, point lights, emissive and
// linear fog. Unlit materials output their flat color plus emissive.
const ItemFragmentShader = `#version 410 core

#define MAX_POINT_LIGHTS 32

in vec3 vWorldPos;
in vec3 vNormal;

uniform vec3 uColor;
uniform vec3 uEmissive; // premultiplied by intensity
uniform float uOpacity;
uniform int uUnlit;

uniform vec3 uLightDir;
uniform vec3 uAmbient;
uniform vec3 uDiffuse;

uniform int uPointLightCount;
uniform vec3 uPointLightPositions[MAX_POINT_LIGHTS];
uniform vec3 uPointLightColors[MAX_POINT_LIGHTS];
uniform float uPointLightRanges[MAX_POINT_LIGHTS];
uniform float uPointLightIntensities[MAX_POINT_LIGHTS];

uniform int uFogUse;
uniform float uFogNear;
uniform float uFogFar;
uniform vec3 uFogColor;
uniform vec3 uCameraPos;

out vec4 FragColor;

void main() {
    vec3 emissive = uEmissive;
    vec3 color;

    if (uUnlit == 1) {
        color = uColor + emissive;
    } else {
        vec3 n = normalize(vNormal);
        vec3 light = uAmbient + uDiffuse * max(dot(n, -uLightDir), 0.0);

        for (int i = 0; i < uPointLightCount; i++) {
            vec3 toLight = uPointLightPositions[i] - vWorldPos;
            float dist = length(toLight);
            if (dist >= uPointLightRanges[i]) {
                continue;
            }
            float falloff = 1.0 - dist / uPointLightRanges[i];
            float lambert = max(dot(n, toLight / max(dist, 1e-4)), 0.0);
            light += uPointLightColors[i] * uPointLightIntensities[i] * falloff * falloff * lambert;
        }
        color = uColor * light + emissive;
    }

    if (uFogUse == 1) {
        float dist = length(vWorldPos - uCameraPos);
        float f = clamp((dist - uFogNear) / (uFogFar - uFogNear), 0.0, 1.0);
        color = mix(color, uFogColor, f);
    }

    FragColor = vec4(pow(color, vec3(1.0 / 2.2)), uOpacity);
}
`
