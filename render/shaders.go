package render

// Particle vertex shader: expands each vertex from the particle center to
// a quad corner using a basis chosen by renderMode, then picks the atlas
// frame from the particle's age.
const particleVertSrc = `
#version 410 core

layout(location = 0) in vec3 aPos;
layout(location = 1) in vec2 aTexCoord;
layout(location = 2) in vec4 aColor;
layout(location = 3) in float aSize;
layout(location = 4) in vec3 aVelocity;
layout(location = 5) in float aAge;

uniform mat4 view;
uniform mat4 projection;
uniform int renderMode; // 0=Normal, 1=Linked, 2=Billboard_Local_Z, 3=Billboard_World_Z, 4=Aligned_World_Z, 5=Aligned_Particle_Dir, 6=Motion_Blur
uniform int xGrid;
uniform int yGrid;
uniform float fps;
uniform float frameStart;
uniform float frameEnd;

out vec2 TexCoord;
out vec4 Color;

void main() {
    vec3 right, up;

    if (renderMode == 0) { // face the camera
        right = normalize(vec3(view[0][0], view[1][0], view[2][0]));
        up = normalize(vec3(view[0][1], view[1][1], view[2][1]));
        vec3 corner = aPos + (right * (aTexCoord.x - 0.5) + up * (aTexCoord.y - 0.5)) * aSize;
        gl_Position = projection * view * vec4(corner, 1.0);
    }
    else if (renderMode == 2 || renderMode == 3) { // face along Z, flat quads
        right = vec3(1.0, 0.0, 0.0);
        up = vec3(0.0, 1.0, 0.0);
        vec3 corner = aPos + (right * (aTexCoord.x - 0.5) + up * (aTexCoord.y - 0.5)) * aSize;
        gl_Position = projection * view * vec4(corner, 1.0);
    }
    else if (renderMode == 4) { // stand upright on the ground plane
        right = vec3(1.0, 0.0, 0.0);
        up = vec3(0.0, 0.0, 1.0);
        vec3 corner = aPos + (right * (aTexCoord.x - 0.5) + up * (aTexCoord.y - 0.5)) * aSize;
        gl_Position = projection * view * vec4(corner, 1.0);
    }
    else if (renderMode == 5) { // align to travel direction
        float speed = length(aVelocity);
        vec3 dir = speed > 0.01 ? normalize(aVelocity) : vec3(0.0, 0.0, 1.0);
        vec3 side = cross(dir, vec3(0.0, 0.0, 1.0));
        // vertical travel leaves the cross product degenerate
        right = length(side) > 0.001 ? normalize(side) : vec3(1.0, 0.0, 0.0);
        up = cross(right, dir);
        vec3 corner = aPos + (right * (aTexCoord.x - 0.5) + up * (aTexCoord.y - 0.5)) * aSize;
        gl_Position = projection * view * vec4(corner, 1.0);
    }
    else if (renderMode == 6) { // stretch along velocity
        float speed = length(aVelocity);
        vec3 dir = speed > 0.01 ? normalize(aVelocity) : vec3(0.0, 0.0, 1.0);
        float stretch = min(speed * 0.1, 2.0);

        vec3 side = cross(dir, vec3(0.0, 0.0, 1.0));
        right = length(side) > 0.001 ? normalize(side) : vec3(1.0, 0.0, 0.0);
        up = dir;
        vec3 corner = aPos + right * (aTexCoord.x - 0.5) * aSize
                           + up * (aTexCoord.y - 0.5) * aSize * (1.0 + stretch);
        gl_Position = projection * view * vec4(corner, 1.0);
    }
    else { // Linked and anything else: billboard in view space
        vec4 viewPos = view * vec4(aPos, 1.0);
        right = vec3(view[0][0], view[1][0], view[2][0]);
        up = vec3(view[0][1], view[1][1], view[2][1]);
        vec3 corner = viewPos.xyz + (right * (aTexCoord.x - 0.5) + up * (aTexCoord.y - 0.5)) * aSize;
        gl_Position = projection * vec4(corner, 1.0);
    }

    vec2 finalTexCoord = aTexCoord;
    if (xGrid > 1 || yGrid > 1) {
        float totalFrames = frameEnd - frameStart + 1.0;
        float currentFrame = frameStart + mod(aAge * fps, totalFrames);
        int frameIndex = int(currentFrame);

        int frameX = frameIndex % xGrid;
        int frameY = frameIndex / xGrid;

        vec2 frameSize = vec2(1.0 / float(xGrid), 1.0 / float(yGrid));
        vec2 frameOffset = vec2(float(frameX), float(frameY)) * frameSize;

        finalTexCoord = frameOffset + aTexCoord * frameSize;
    }

    TexCoord = finalTexCoord;
    Color = aColor;
}
` + "\x00"

// Untextured particles fall back to a soft circle. Near-zero alpha is
// discarded so Punch-Through gets its hard cutout.
const particleFragSrc = `
#version 410 core

in vec2 TexCoord;
in vec4 Color;

out vec4 FragColor;

uniform sampler2D particleTexture;
uniform bool hasTexture;

void main() {
    vec4 texColor = vec4(1.0);
    if (hasTexture) {
        texColor = texture(particleTexture, TexCoord);
    } else {
        vec2 center = vec2(0.5, 0.5);
        float dist = distance(TexCoord, center);
        float alpha = 1.0 - smoothstep(0.3, 0.5, dist);
        texColor = vec4(1.0, 1.0, 1.0, alpha);
    }

    FragColor = Color * texColor;

    if (FragColor.a < 0.01) {
        discard;
    }
}
` + "\x00"

const lineVertSrc = `
#version 410 core

layout(location = 0) in vec3 aPos;

uniform mat4 view;
uniform mat4 projection;
uniform mat4 model;

void main() {
    gl_Position = projection * view * model * vec4(aPos, 1.0);
}
` + "\x00"

const lineFragSrc = `
#version 410 core

out vec4 FragColor;
uniform vec3 lineColor;

void main() {
    FragColor = vec4(lineColor, 1.0);
}
` + "\x00"
